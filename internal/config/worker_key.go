package config

type WorkerKeyStruct struct {
	BookingEventsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	BookingEventsQueue: "booking_events_queue",
}
