package failure_predictor

import (
	"strings"
	"testing"
)

func validFields() FormFields {
	return FormFields{
		FieldAirTemperature:     "298.1",
		FieldProcessTemperature: "308.6",
		FieldRotationalSpeed:    "1551",
		FieldTorque:             "42.8",
		FieldToolWear:           "0",
		FieldType:               "M",
	}
}

func TestParseForm_Valid(t *testing.T) {
	t.Parallel()

	r, err := ParseForm(validFields())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := SensorReading{
		AirTemperature:     298.1,
		ProcessTemperature: 308.6,
		RotationalSpeed:    1551,
		Torque:             42.8,
		ToolWear:           0,
		Type:               MachineTypeM,
	}
	if r != want {
		t.Fatalf("reading: got %+v, want %+v", r, want)
	}
}

func TestParseForm_NonNumericFields(t *testing.T) {
	t.Parallel()

	numeric := []string{
		FieldAirTemperature,
		FieldProcessTemperature,
		FieldRotationalSpeed,
		FieldTorque,
		FieldToolWear,
	}
	for _, field := range numeric {
		for _, bad := range []string{"abc", "", "12,5", "1.2.3", "0x1p4", "-0X10", "1e400"} {
			field, bad := field, bad
			t.Run(field+"="+bad, func(t *testing.T) {
				t.Parallel()

				fields := validFields()
				fields[field] = bad
				_, err := ParseForm(fields)
				ve, ok := AsValidationError(err)
				if !ok {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if ve.Kind != InvalidNumber || ve.Field != field {
					t.Errorf("got kind=%v field=%q", ve.Kind, ve.Field)
				}
				if !strings.HasPrefix(ve.Message(), "Invalid input:") {
					t.Errorf("message %q lacks prefix", ve.Message())
				}
			})
		}
	}
}

func TestParseForm_MissingField(t *testing.T) {
	t.Parallel()

	for _, field := range []string{FieldAirTemperature, FieldTorque, FieldType} {
		field := field
		t.Run(field, func(t *testing.T) {
			t.Parallel()

			fields := validFields()
			delete(fields, field)
			_, err := ParseForm(fields)
			ve, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Kind != MissingField || ve.Field != field {
				t.Errorf("got kind=%v field=%q", ve.Kind, ve.Field)
			}
			if !strings.HasPrefix(ve.Message(), InvalidInputPrefix) {
				t.Errorf("message %q lacks prefix", ve.Message())
			}
		})
	}
}

func TestParseForm_InvalidType(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"", " ", "X", "HM", "high", "m m", "0"} {
		bad := bad
		t.Run(bad, func(t *testing.T) {
			t.Parallel()

			fields := validFields()
			fields[FieldType] = bad
			_, err := ParseForm(fields)
			ve, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if got := ve.Message(); got != "Invalid input: Invalid type. Enter H, M, or L." {
				t.Fatalf("message: got %q", got)
			}
		})
	}
}

func TestParseForm_TypeNormalization(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{" h ", "H", "h", "\tH\n"} {
		fields := validFields()
		fields[FieldType] = raw
		r, err := ParseForm(fields)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		if r.Type != MachineTypeH {
			t.Fatalf("%q: type got %q", raw, r.Type)
		}
		f := r.Features()
		if f[5] != 1 || f[6] != 0 || f[7] != 0 {
			t.Fatalf("%q: one-hot got %v", raw, f[5:])
		}
	}
}

func TestParseForm_NumericWhitespaceAccepted(t *testing.T) {
	t.Parallel()

	fields := validFields()
	fields[FieldTorque] = " 40 "
	r, err := ParseForm(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Torque != 40 {
		t.Fatalf("torque: got %v", r.Torque)
	}
}
