package models

import "time"

// Driver represents a driver available for home-collection routes.
type Driver struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name" binding:"required"`
	LicenseNumber *string   `json:"license_number,omitempty" db:"license_number"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Collector represents a sample collector.
type Collector struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Car represents a vehicle of the clinic fleet. LicensePlate is unique.
type Car struct {
	ID           int64     `json:"id" db:"id"`
	Model        string    `json:"model" db:"model" binding:"required"`
	LicensePlate string    `json:"license_plate" db:"license_plate" binding:"required"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// LogisticsPackage bundles a driver, a collector and a car under a unique
// name so a route can be assigned in one step. Display fields are copied
// from the referenced entities at creation time.
type LogisticsPackage struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name" binding:"required"`
	DriverID        int64     `json:"driver_id" db:"driver_id"`
	DriverName      string    `json:"driver_name" db:"driver_name"`
	CollectorID     int64     `json:"collector_id" db:"collector_id"`
	CollectorName   string    `json:"collector_name" db:"collector_name"`
	CarID           int64     `json:"car_id" db:"car_id"`
	CarModel        string    `json:"car_model" db:"car_model"`
	CarLicensePlate string    `json:"car_license_plate" db:"car_license_plate"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
