package vehicle

import "errors"

var (
	ErrNotAvailable  = errors.New("vehicle is not available")
	ErrInvalidStatus = errors.New("invalid vehicle status")
	ErrNotHeld       = errors.New("vehicle is not held for a booking")
)

type Status string

const (
	StatusAvailable    Status = "available"
	StatusReserved     Status = "reserved" // held by an in-flight booking
	StatusRented       Status = "rented"
	StatusMaintenance  Status = "maintenance"
	StatusOutOfService Status = "out_of_service"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusRented, StatusMaintenance, StatusOutOfService:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type Vehicle struct {
	id            int64
	plate         string
	dailyPrice    int64
	depositAmount int64
	status        Status
}

func ReconstructVehicle(id int64, plate string, dailyPrice, depositAmount int64, status Status) *Vehicle {
	return &Vehicle{
		id:            id,
		plate:         plate,
		dailyPrice:    dailyPrice,
		depositAmount: depositAmount,
		status:        status,
	}
}

func (v *Vehicle) IsAvailable() bool {
	return v.status == StatusAvailable
}

// Hold marks the vehicle as taken by a booking whose payment has not settled yet.
func (v *Vehicle) Hold() error {
	if v.status != StatusAvailable {
		return ErrNotAvailable
	}
	v.status = StatusReserved
	return nil
}

func (v *Vehicle) ID() int64            { return v.id }
func (v *Vehicle) Plate() string        { return v.plate }
func (v *Vehicle) DailyPrice() int64    { return v.dailyPrice }
func (v *Vehicle) DepositAmount() int64 { return v.depositAmount }
func (v *Vehicle) Status() Status       { return v.status }
