package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bloodlink/internal/client/models"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	return verr.Fields
}

func TestStruct_BloodUnitInput(t *testing.T) {
	exp := models.NewDate(2030, 1, 1)

	require.NoError(t, Struct(models.BloodUnitInput{BloodType: models.BloodTypeOPos, Quantity: 0, ExpirationDate: &exp}))

	fields := fieldsOf(t, Struct(models.BloodUnitInput{BloodType: "Z+", Quantity: -1}))
	assert.Equal(t, "must be a valid blood type", fields["blood_type"])
	assert.Equal(t, "must be at least 0", fields["quantity"])
	assert.Equal(t, "is required", fields["expiration_date"])
}

func TestStruct_BloodRequestInput(t *testing.T) {
	fields := fieldsOf(t, Struct(models.BloodRequestInput{BloodType: models.BloodTypeAPos, Quantity: 0, PriorityLevel: "high"}))
	assert.Equal(t, "must be greater than 0", fields["quantity"])
	assert.Equal(t, "must be one of: normal, urgent", fields["priority_level"])
	assert.NotContains(t, fields, "blood_type")
}

func TestStruct_RequestDraft(t *testing.T) {
	require.NoError(t, Struct(models.RequestDraft{Status: models.StatusCompleted, Quantity: 2}))

	fields := fieldsOf(t, Struct(models.RequestDraft{Status: "Shipped", Quantity: 2}))
	assert.Equal(t, map[string]string{"status": "must be one of: Pending, Completed, Cancelled"}, fields)
}

func TestStruct_DonorRegistration(t *testing.T) {
	dob := models.NewDate(1990, 1, 1)
	valid := models.DonorRegistration{
		Firstname: "A", Lastname: "B", DOB: &dob, Gender: "Female",
		Email: "a@b.co", BloodType: models.BloodTypeBNeg, PhoneNumber: "1",
		Password: "12345678", ConfirmPassword: "12345678",
	}
	require.NoError(t, Struct(valid))

	bad := valid
	bad.Email = "not-an-email"
	bad.Password = "short"
	bad.ConfirmPassword = "other"
	fields := fieldsOf(t, Struct(bad))
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 8 characters", fields["password"])
	assert.Equal(t, "does not match", fields["confirm_password"])
}

func TestStruct_HospitalRegistrationNeedsDocument(t *testing.T) {
	h := models.HospitalRegistration{
		HospitalName: "H", StaffName: "S", StaffID: "1", Email: "h@h.org",
		ContactInfo: "1", Address: "A", Password: "12345678",
	}
	fields := fieldsOf(t, Struct(h))
	assert.Equal(t, map[string]string{"documents": "is required"}, fields)
}

func TestStruct_TransferNeedsDistinctHospitals(t *testing.T) {
	fields := fieldsOf(t, Struct(models.TransferRequest{
		PatientName: "P", BloodType: models.BloodTypeABPos, DonorHospital: "X", RecipientHospital: "X",
	}))
	assert.Contains(t, fields["recipient_hospital"], "must differ")
}

func TestError_Message(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "bad", "a": "worse"}}
	assert.Equal(t, "validation failed: a: worse; b: bad", err.Error())
	assert.Equal(t, "bad", err.Field("b"))
	assert.Equal(t, "", err.Field("c"))

	var nilErr *Error
	assert.Equal(t, "", nilErr.Field("a"))
}

func TestParseQuantity(t *testing.T) {
	n, err := ParseQuantity("quantity", " 7 ")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = ParseQuantity("quantity", "0")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, in := range []string{"-1", "2.5", "ten", ""} {
		_, err := ParseQuantity("quantity", in)
		fields := fieldsOf(t, err)
		assert.Contains(t, fields, "quantity", in)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("id", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseID("id", "0")
	assert.Error(t, err)
	_, err = ParseID("id", "x")
	assert.Error(t, err)
}
