package ambulance

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("ambulance not found")

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

type Driver struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Unit struct {
	ID              string   `json:"id"`
	VehicleNumber   string   `json:"vehicle_number"`
	Type            string   `json:"type"`
	Status          string   `json:"status"`
	CurrentLocation Location `json:"current_location"`
	Driver          Driver   `json:"driver"`
	Equipment       []string `json:"equipment"`
}

// Directory is the fleet roster. Units are seeded statically; only status
// changes at runtime.
type Directory struct {
	mu    sync.RWMutex
	units []Unit
}

func NewDirectory() *Directory {
	return &Directory{units: seedUnits()}
}

func (d *Directory) List() []Unit {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Unit, len(d.units))
	copy(out, d.units)
	return out
}

func (d *Directory) Get(id string) (Unit, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.units {
		if u.ID == id {
			return u, nil
		}
	}
	return Unit{}, ErrNotFound
}

func (d *Directory) UpdateStatus(id, status string) (Unit, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.units {
		if d.units[i].ID == id {
			d.units[i].Status = status
			return d.units[i], nil
		}
	}
	return Unit{}, ErrNotFound
}

func seedUnits() []Unit {
	return []Unit{
		{
			ID:            "AMB-105",
			VehicleNumber: "KA-05-MN-9876",
			Type:          "Advanced Life Support",
			Status:        "available",
			CurrentLocation: Location{
				Latitude:  28.5672,
				Longitude: 77.2100,
				Address:   "AIIMS Hospital, New Delhi",
			},
			Driver:    Driver{Name: "Amit Sharma", Phone: "+917483588380"},
			Equipment: []string{"Defibrillator", "Oxygen", "Stretcher"},
		},
		{
			ID:            "AMB-208",
			VehicleNumber: "MH-12-XY-4321",
			Type:          "Basic Life Support",
			Status:        "available",
			CurrentLocation: Location{
				Latitude:  28.6129,
				Longitude: 77.2295,
				Address:   "India Gate Area",
			},
			Driver:    Driver{Name: "Priya Verma", Phone: "+918618243016"},
			Equipment: []string{"Oxygen", "Stretcher"},
		},
		{
			ID:            "AMB-312",
			VehicleNumber: "DL-08-PQ-7890",
			Type:          "Advanced Life Support",
			Status:        "available",
			CurrentLocation: Location{
				Latitude:  28.6400,
				Longitude: 77.2300,
				Address:   "Karol Bagh Area",
			},
			Driver:    Driver{Name: "Rahul Singh", Phone: "+917483588380"},
			Equipment: []string{"Defibrillator", "Oxygen", "Ventilator", "Stretcher"},
		},
		{
			ID:            "AMB-456",
			VehicleNumber: "UP-16-RS-2468",
			Type:          "Basic Life Support",
			Status:        "available",
			CurrentLocation: Location{
				Latitude:  28.6050,
				Longitude: 77.2150,
				Address:   "Nehru Place Area",
			},
			Driver:    Driver{Name: "Neha Gupta", Phone: "+918618243016"},
			Equipment: []string{"Oxygen", "First Aid Kit", "Stretcher"},
		},
		{
			ID:            "AMB-589",
			VehicleNumber: "HR-26-TU-1357",
			Type:          "Advanced Life Support",
			Status:        "available",
			CurrentLocation: Location{
				Latitude:  28.6280,
				Longitude: 77.2180,
				Address:   "Connaught Place Area",
			},
			Driver:    Driver{Name: "Vikram Patel", Phone: "+917483588380"},
			Equipment: []string{"Defibrillator", "Oxygen", "ECG Monitor", "Stretcher"},
		},
	}
}
