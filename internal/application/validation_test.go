package application

import (
	"errors"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "pattern",
			value:     "Connector_.*",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "pattern",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "runID",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateRequired_Message(t *testing.T) {
	err := ValidateRequired("runID", "")
	if err == nil || err.Error() != "runID: run ID is required" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		match   string
		wantErr bool
	}{
		{
			name:  "literal",
			expr:  "Connector_Main",
			match: "Connector_Main",
		},
		{
			name:  "alternation",
			expr:  "DI_LOCAL|SC_LOCAL",
			match: "SC_LOCAL",
		},
		{
			name:    "empty",
			expr:    "",
			wantErr: true,
		},
		{
			name:    "bad regex",
			expr:    "Border_(",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := ValidatePattern("pattern", tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePattern() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if !re.MatchString(tt.match) {
				t.Errorf("expected %q to match %q", tt.expr, tt.match)
			}
			if re.MatchString(tt.match + "_X") {
				t.Errorf("expected %q to require a full match", tt.expr)
			}
		})
	}
}

func TestReplaceError_Is(t *testing.T) {
	err := &ReplaceError{Handle: "2F", From: "Valve_A", To: "Valve_B", Reason: "insert failed"}
	if !errors.Is(err, ErrCannotReplace) {
		t.Error("expected ReplaceError to match ErrCannotReplace")
	}
	if err.Error() != "cannot replace 2F (Valve_A) with Valve_B: insert failed" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
