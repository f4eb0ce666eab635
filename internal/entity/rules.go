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
	"time"

	"github.com/pgEdge/pgedge-datagen/internal/datagen"
)

// Rule produces one record. refs may be nil.
type Rule func(f *datagen.Faker, refs *References) (Record, error)

func newBank(f *datagen.Faker, _ *References) (Record, error) {
	now := f.Now()
	return &BankRecord{
		ID:                f.UUID(),
		CardNumber:        f.Digits(16),
		CardHolderName:    f.FirstName(),
		CardHolderSurname: f.LastName(),
		ExpirationMonth:   f.Int(1, 12),
		ExpirationYear:    now.Year() + f.Int(1, 5),
		CVV:               f.Digits(3),
		CardType:          datagen.Choose(f, CardTypes),
		Amount:            f.Money(1000, 100000),
		Currency:          Currency,
		IssuerBank:        f.Company(),
		Status:            f.Status(),
		CreatedAt:         datagen.FormatTime(now),
	}, nil
}

func newEmployee(f *datagen.Faker, _ *References) (Record, error) {
	return &EmployeeRecord{
		Employee: EmployeeDetails{
			EmployeeID:       f.Bothify("EMP####"),
			Name:             f.FirstName(),
			Surname:          f.LastName(),
			Email:            f.Email(),
			Phone:            f.Phone(),
			Address:          f.Address(),
			Gender:           f.Gender(),
			BirthDate:        datagen.FormatTime(f.BirthDate()),
			HireDate:         datagen.FormatTime(f.PastDate(2)),
			Position:         f.JobTitle(),
			Role:             datagen.Choose(f, EmployeeRoles),
			Salary:           f.Int(30000, 150000),
			Status:           f.Status(),
			EmergencyContact: f.Name(),
			EmergencyPhone:   f.Phone(),
			ProfileImageURL:  f.ImageURL(),
			PasswordHash:     f.SHA256(),
			Salt:             f.SHA1(),
		},
	}, nil
}

func newFlight(f *datagen.Faker, refs *References) (Record, error) {
	departure := f.FutureDate(30)
	arrival := departure.Add(time.Duration(f.Int(1, 12)) * time.Hour)

	registration := refs.PlaneRegistration(f)
	if registration == "" {
		registration = "TC-" + f.Bothify("???")
	}

	return &FlightRecord{
		FlightNumber:          fmt.Sprintf("%s%d", datagen.Choose(f, AirlineCodes), f.Int(100, 9999)),
		DepartureAirport:      datagen.Choose(f, DepartureHubs),
		DestinationAirport:    datagen.Choose(f, Destinations),
		DepartureDatetime:     datagen.FormatTime(departure),
		ArrivalDatetime:       datagen.FormatTime(arrival),
		DepartureGateNumber:   gate(f),
		DestinationGateNumber: gate(f),
		PlaneRegistration:     registration,
		Status:                datagen.Choose(f, FlightStatuses),
		Price:                 f.Money(100, 2000),
	}, nil
}

func gate(f *datagen.Faker) string {
	return fmt.Sprintf("%s%d", datagen.Choose(f, GateLetters), f.Int(1, 30))
}

func newPassenger(f *datagen.Faker, _ *References) (Record, error) {
	return &PassengerRecord{
		NationalID:       f.Digits(11),
		PNR:              f.Bothify("??????"),
		FlightID:         f.Int(1, 1000),
		PaymentID:        f.Int(1, 1000),
		BaggageAllowance: f.Int(0, 30),
		BaggageID:        f.Bothify("??########"),
		FareType:         datagen.Choose(f, FareTypes),
		Seat:             f.Int(1, 300),
		Meal:             datagen.Choose(f, Meals),
		ExtraBaggage:     f.Int(0, 2),
		CheckIn:          f.Bool(),
		Name:             f.FirstName(),
		Surname:          f.LastName(),
		Email:            f.Email(),
		Phone:            f.Phone(),
		Gender:           f.Gender(),
		BirthDate:        datagen.FormatTime(f.BirthDate()),
		CIPMember:        f.Bool(),
		VIPMember:        f.Bool(),
		Disabled:         f.Bool(),
		Child:            f.Bool(),
	}, nil
}

func newPayment(f *datagen.Faker, _ *References) (Record, error) {
	return &PaymentRecord{
		PaymentID:     f.UUID(),
		UserID:        f.UUID(),
		Amount:        f.Money(10, 5000),
		Currency:      Currency,
		PaymentMethod: datagen.Choose(f, PaymentMethods),
		Status:        f.Status(),
	}, nil
}

func newPlane(f *datagen.Faker, _ *References) (Record, error) {
	return &PlaneRecord{
		Registration: fmt.Sprintf("TC-%d", f.Int(10000, 99999)),
		Model:        datagen.Choose(f, PlaneModels),
		Manufacturer: datagen.Choose(f, Manufacturers),
		Capacity:     f.Int(100, 500),
		Status:       f.Status(),
	}, nil
}

func newRefund(f *datagen.Faker, _ *References) (Record, error) {
	return &RefundRecord{
		RefundID:  f.UUID(),
		PaymentID: f.UUID(),
		Amount:    f.Money(10, 5000),
		Currency:  Currency,
		Reason:    datagen.Truncate(f.Sentence(f.Int(5, 25)), 200),
		Status:    f.Status(),
	}, nil
}

func newUser(f *datagen.Faker, _ *References) (Record, error) {
	now := datagen.FormatTime(f.Now())
	return &UserRecord{
		Name:               f.FirstName(),
		Surname:            f.LastName(),
		Username:           f.Username(),
		Email:              f.Email(),
		PasswordHash:       f.SHA256(),
		Salt:               f.SHA1(),
		Phone:              f.Phone(),
		Gender:             f.Gender(),
		BirthDate:          datagen.FormatTime(f.BirthDate()),
		LastLogin:          now,
		LastPasswordChange: now,
	}, nil
}
