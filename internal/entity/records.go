//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is the currency used by all monetary records.
const Currency = "TRY"

// Value sets shared by generation rules and validation.
var (
	CardTypes      = []string{"visa", "mastercard"}
	Statuses       = []string{"active", "inactive"}
	Genders        = []string{"male", "female"}
	EmployeeRoles  = []string{"hr", "admin", "flight_planner", "passenger_services", "ground_services"}
	FlightStatuses = []string{"scheduled", "delayed", "cancelled", "departed", "arrived"}
	AirlineCodes   = []string{"TK", "PC", "XQ", "J2"}
	DepartureHubs  = []string{"IST", "SAW", "ESB", "AYT", "ADB"}
	Destinations   = []string{"LHR", "CDG", "FRA", "JFK", "DXB"}
	GateLetters    = []string{"A", "B", "C", "D"}
	Meals          = []string{"standard", "vegetarian", "vegan", "halal", "kosher"}
	FareTypes      = []string{"economy", "business", "first"}
	PaymentMethods = []string{"credit_card", "debit_card", "bank_transfer", "paypal"}
	PlaneModels    = []string{"737", "747", "777", "787", "A320", "A330", "A350", "A380"}
	Manufacturers  = []string{"Boeing", "Airbus"}
)

// BankRecord is a payment card held at a bank.
type BankRecord struct {
	ID                string          `json:"id"`
	CardNumber        string          `json:"card_number"`
	CardHolderName    string          `json:"card_holder_name"`
	CardHolderSurname string          `json:"card_holder_surname"`
	ExpirationMonth   int             `json:"expiration_month"`
	ExpirationYear    int             `json:"expiration_year"`
	CVV               string          `json:"cvv"`
	CardType          string          `json:"card_type"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	IssuerBank        string          `json:"issuer_bank"`
	Status            string          `json:"status"`
	CreatedAt         string          `json:"created_at"`
}

// Validate implements Record.
func (r *BankRecord) Validate() error {
	return firstError(
		required("id", r.ID),
		digits("card_number", r.CardNumber, 16),
		required("card_holder_name", r.CardHolderName),
		required("card_holder_surname", r.CardHolderSurname),
		inRange("expiration_month", r.ExpirationMonth, 1, 12),
		digits("cvv", r.CVV, 3),
		oneOf("card_type", r.CardType, CardTypes),
		positive("amount", r.Amount),
		required("currency", r.Currency),
		required("issuer_bank", r.IssuerBank),
		oneOf("status", r.Status, Statuses),
		required("created_at", r.CreatedAt),
	)
}

// EmployeeDetails holds the fields of an employee.
type EmployeeDetails struct {
	EmployeeID       string `json:"employee_id"`
	Name             string `json:"name"`
	Surname          string `json:"surname"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	Gender           string `json:"gender"`
	BirthDate        string `json:"birth_date"`
	HireDate         string `json:"hire_date"`
	Position         string `json:"position"`
	Role             string `json:"role"`
	Salary           int    `json:"salary"`
	Status           string `json:"status"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
	ProfileImageURL  string `json:"profile_image_url"`
	PasswordHash     string `json:"password_hash"`
	Salt             string `json:"salt"`
}

// EmployeeRecord is the employee payload. The API expects the fields
// nested under an "employee" key.
type EmployeeRecord struct {
	Employee EmployeeDetails `json:"employee"`
}

// Validate implements Record.
func (r *EmployeeRecord) Validate() error {
	e := r.Employee
	return firstError(
		required("employee_id", e.EmployeeID),
		required("name", e.Name),
		required("surname", e.Surname),
		required("email", e.Email),
		required("phone", e.Phone),
		oneOf("gender", e.Gender, Genders),
		required("birth_date", e.BirthDate),
		required("hire_date", e.HireDate),
		oneOf("role", e.Role, EmployeeRoles),
		inRange("salary", e.Salary, 30000, 150000),
		oneOf("status", e.Status, Statuses),
		required("password_hash", e.PasswordHash),
		required("salt", e.Salt),
	)
}

// FlightRecord is a scheduled flight.
type FlightRecord struct {
	FlightNumber          string          `json:"flight_number"`
	DepartureAirport      string          `json:"departure_airport"`
	DestinationAirport    string          `json:"destination_airport"`
	DepartureDatetime     string          `json:"departure_datetime"`
	ArrivalDatetime       string          `json:"arrival_datetime"`
	DepartureGateNumber   string          `json:"departure_gate_number"`
	DestinationGateNumber string          `json:"destination_gate_number"`
	PlaneRegistration     string          `json:"plane_registration"`
	Status                string          `json:"status"`
	Price                 decimal.Decimal `json:"price"`
}

// Validate implements Record.
func (r *FlightRecord) Validate() error {
	return firstError(
		required("flight_number", r.FlightNumber),
		oneOf("departure_airport", r.DepartureAirport, DepartureHubs),
		oneOf("destination_airport", r.DestinationAirport, Destinations),
		required("departure_datetime", r.DepartureDatetime),
		required("arrival_datetime", r.ArrivalDatetime),
		required("departure_gate_number", r.DepartureGateNumber),
		required("destination_gate_number", r.DestinationGateNumber),
		required("plane_registration", r.PlaneRegistration),
		oneOf("status", r.Status, FlightStatuses),
		positive("price", r.Price),
	)
}

// PassengerRecord is a passenger booked on a flight.
type PassengerRecord struct {
	NationalID       string `json:"national_id"`
	PNR              string `json:"pnr_no"`
	FlightID         int    `json:"flight_id"`
	PaymentID        int    `json:"payment_id"`
	BaggageAllowance int    `json:"baggage_allowance"`
	BaggageID        string `json:"baggage_id"`
	FareType         string `json:"fare_type"`
	Seat             int    `json:"seat"`
	Meal             string `json:"meal"`
	ExtraBaggage     int    `json:"extra_baggage"`
	CheckIn          bool   `json:"check_in"`
	Name             string `json:"name"`
	Surname          string `json:"surname"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Gender           string `json:"gender"`
	BirthDate        string `json:"birth_date"`
	CIPMember        bool   `json:"cip_member"`
	VIPMember        bool   `json:"vip_member"`
	Disabled         bool   `json:"disabled"`
	Child            bool   `json:"child"`
}

// Validate implements Record.
func (r *PassengerRecord) Validate() error {
	return firstError(
		digits("national_id", r.NationalID, 11),
		required("pnr_no", r.PNR),
		inRange("flight_id", r.FlightID, 1, 1000),
		inRange("payment_id", r.PaymentID, 1, 1000),
		inRange("baggage_allowance", r.BaggageAllowance, 0, 30),
		required("baggage_id", r.BaggageID),
		oneOf("fare_type", r.FareType, FareTypes),
		inRange("seat", r.Seat, 1, 300),
		oneOf("meal", r.Meal, Meals),
		inRange("extra_baggage", r.ExtraBaggage, 0, 2),
		required("name", r.Name),
		required("surname", r.Surname),
		required("email", r.Email),
		oneOf("gender", r.Gender, Genders),
		required("birth_date", r.BirthDate),
	)
}

// PaymentRecord is a payment made by a user.
type PaymentRecord struct {
	PaymentID     string          `json:"payment_id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
}

// Validate implements Record.
func (r *PaymentRecord) Validate() error {
	return firstError(
		required("payment_id", r.PaymentID),
		required("user_id", r.UserID),
		positive("amount", r.Amount),
		required("currency", r.Currency),
		oneOf("payment_method", r.PaymentMethod, PaymentMethods),
		oneOf("status", r.Status, Statuses),
	)
}

// PlaneRecord is an aircraft.
type PlaneRecord struct {
	Registration string `json:"registration"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Capacity     int    `json:"capacity"`
	Status       string `json:"status"`
}

// Validate implements Record.
func (r *PlaneRecord) Validate() error {
	return firstError(
		required("registration", r.Registration),
		oneOf("model", r.Model, PlaneModels),
		oneOf("manufacturer", r.Manufacturer, Manufacturers),
		inRange("capacity", r.Capacity, 100, 500),
		oneOf("status", r.Status, Statuses),
	)
}

// RefundRecord is a refund issued against a payment.
type RefundRecord struct {
	RefundID  string          `json:"refund_id"`
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reason    string          `json:"reason"`
	Status    string          `json:"status"`
}

// Validate implements Record.
func (r *RefundRecord) Validate() error {
	var reasonErr error
	if len(r.Reason) > 200 {
		reasonErr = &FieldError{Field: "reason", Reason: "longer than 200 characters"}
	}
	return firstError(
		required("refund_id", r.RefundID),
		required("payment_id", r.PaymentID),
		positive("amount", r.Amount),
		required("currency", r.Currency),
		required("reason", r.Reason),
		reasonErr,
		oneOf("status", r.Status, Statuses),
	)
}

// UserRecord is an application user account.
type UserRecord struct {
	Name               string `json:"name"`
	Surname            string `json:"surname"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	PasswordHash       string `json:"password_hash"`
	Salt               string `json:"salt"`
	Phone              string `json:"phone"`
	Gender             string `json:"gender"`
	BirthDate          string `json:"birth_date"`
	LastLogin          string `json:"last_login"`
	LastPasswordChange string `json:"last_password_change"`
}

// Validate implements Record.
func (r *UserRecord) Validate() error {
	return firstError(
		required("name", r.Name),
		required("surname", r.Surname),
		required("username", r.Username),
		required("email", r.Email),
		required("password_hash", r.PasswordHash),
		required("salt", r.Salt),
		required("phone", r.Phone),
		oneOf("gender", r.Gender, Genders),
		required("birth_date", r.BirthDate),
		required("last_login", r.LastLogin),
		required("last_password_change", r.LastPasswordChange),
	)
}

func digits(field, v string, n int) error {
	if len(v) != n || strings.Trim(v, "0123456789") != "" {
		return &FieldError{Field: field, Reason: fmt.Sprintf("must be %d digits", n)}
	}
	return nil
}

func positive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return &FieldError{Field: field, Reason: "must be positive"}
	}
	return nil
}
