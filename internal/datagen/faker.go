//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides synthetic data generation utilities.
package datagen

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// Faker provides fake data generation using gofakeit. A Faker is not safe
// for concurrent use.
type Faker struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return NewFakerWithSeed(uint64(time.Now().UnixNano()))
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
		now:   time.Now,
	}
}

// Now returns the current time as seen by the faker.
func (f *Faker) Now() time.Time {
	return f.now()
}

// FirstName generates a random first name.
func (f *Faker) FirstName() string {
	return f.faker.FirstName()
}

// LastName generates a random last name.
func (f *Faker) LastName() string {
	return f.faker.LastName()
}

// Name generates a random full name.
func (f *Faker) Name() string {
	return f.faker.Name()
}

// Username generates a random user name.
func (f *Faker) Username() string {
	return f.faker.Username()
}

// Email generates a random email address.
func (f *Faker) Email() string {
	return f.faker.Email()
}

// Phone generates a Turkish mobile number in +905######### form.
func (f *Faker) Phone() string {
	return "+905" + f.Digits(9)
}

// Address generates a single-line postal address.
func (f *Faker) Address() string {
	return f.faker.Address().Address
}

// Company generates a random company name.
func (f *Faker) Company() string {
	return f.faker.Company()
}

// JobTitle generates a random job title.
func (f *Faker) JobTitle() string {
	return f.faker.JobTitle()
}

// Gender returns "male" or "female".
func (f *Faker) Gender() string {
	return Choose(f, []string{"male", "female"})
}

// Status returns "active" or "inactive".
func (f *Faker) Status() string {
	return Choose(f, []string{"active", "inactive"})
}

// Sentence generates a random sentence.
func (f *Faker) Sentence(wordCount int) string {
	return f.faker.Sentence(wordCount)
}

// DomainName generates a random domain name.
func (f *Faker) DomainName() string {
	return f.faker.DomainName()
}

// DateRange generates a random time between start and end.
func (f *Faker) DateRange(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end)
}

// BirthDate generates a birth date for someone aged 18 to 100.
func (f *Faker) BirthDate() time.Time {
	now := f.now()
	return f.DateRange(now.AddDate(-100, 0, 0), now.AddDate(-18, 0, 0))
}

// PastDate generates a random time within the given number of years before now.
func (f *Faker) PastDate(years int) time.Time {
	now := f.now()
	return f.DateRange(now.AddDate(-years, 0, 0), now)
}

// FutureDate generates a random time within the given number of days after now.
func (f *Faker) FutureDate(days int) time.Time {
	now := f.now()
	return f.DateRange(now, now.AddDate(0, 0, days))
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Money generates an amount between min and max rounded to two places.
func (f *Faker) Money(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(f.Float64(min, max)).Round(2)
}

// Bool generates a random boolean.
func (f *Faker) Bool() bool {
	return f.faker.Bool()
}

// UUID generates a random UUID.
func (f *Faker) UUID() string {
	return f.faker.UUID()
}

// Digits generates a random string of digits of length n.
func (f *Faker) Digits(n int) string {
	return f.faker.DigitN(uint(n))
}

// Letters generates a random string of letters of length n.
func (f *Faker) Letters(n int) string {
	return f.faker.LetterN(uint(n))
}

// Bothify replaces every '#' in pattern with a digit and every '?' with a
// letter. The result is upper-cased.
func (f *Faker) Bothify(pattern string) string {
	return strings.ToUpper(f.faker.Lexify(f.faker.Numerify(pattern)))
}

// SHA256 returns the hex SHA-256 digest of random input.
func (f *Faker) SHA256() string {
	sum := sha256.Sum256([]byte(f.Letters(32)))
	return hex.EncodeToString(sum[:])
}

// SHA1 returns the hex SHA-1 digest of random input.
func (f *Faker) SHA1() string {
	sum := sha1.Sum([]byte(f.Letters(32)))
	return hex.EncodeToString(sum[:])
}

// ImageURL generates a profile image URL.
func (f *Faker) ImageURL() string {
	return fmt.Sprintf("https://%s/images/%s.jpg", f.DomainName(), f.Digits(8))
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// FormatTime formats t as RFC 3339 UTC with second precision.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z")
}

// Truncate truncates a string to max length if needed.
func Truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
