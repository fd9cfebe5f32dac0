package service

const (
	superID   = "00000000-0000-4000-8000-000000000001"
	middleA   = "00000000-0000-4000-8000-00000000000a"
	middleB   = "00000000-0000-4000-8000-00000000000b"
	lowA      = "00000000-0000-4000-8000-0000000000a1"
	orphanLow = "00000000-0000-4000-8000-0000000000f1"
	courierA  = "00000000-0000-4000-8000-0000000000c1"
	courierB  = "00000000-0000-4000-8000-0000000000c2"
	workerA   = "00000000-0000-4000-8000-0000000000d1"

	customerA   = "10000000-0000-4000-8000-00000000000a"
	customerLow = "10000000-0000-4000-8000-0000000000a1"
	customerB   = "10000000-0000-4000-8000-00000000000b"

	orderA1   = "20000000-0000-4000-8000-0000000000a1"
	orderA2   = "20000000-0000-4000-8000-0000000000a2"
	orderA3   = "20000000-0000-4000-8000-0000000000a3"
	orderLow1 = "20000000-0000-4000-8000-0000000001a1"
	orderB1   = "20000000-0000-4000-8000-0000000000b1"
	unknownID = "2fffffff-0000-4000-8000-000000000000"
)
