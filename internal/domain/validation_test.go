package domain

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestValidateForCreate_TitleOnly(t *testing.T) {
	p := TaskPayload{Title: strPtr("Pay water")}
	if err := ValidateForCreate(p); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	task := p.NewTask()
	if task.Description != "" || task.Completed {
		t.Fatalf("expected defaults, got %+v", task)
	}
}

func TestValidateForCreate_Errors(t *testing.T) {
	cases := []struct {
		name    string
		payload TaskPayload
		field   string
		want    string
	}{
		{"missing title", TaskPayload{}, "title", MsgFieldRequired},
		{"blank title", TaskPayload{Title: strPtr("")}, "title", MsgFieldBlank},
		{"long title", TaskPayload{Title: strPtr(strings.Repeat("x", TaskTitleMaxLength+1))}, "title", MsgFieldTooLong(strconv.Itoa(TaskTitleMaxLength))},
		{"nul in title", TaskPayload{Title: strPtr("a\x00b")}, "title", MsgNullCharacters},
		{"nul in description", TaskPayload{Title: strPtr("ok"), Description: strPtr("\x00")}, "description", MsgNullCharacters},
		{"invalid utf-8 title", TaskPayload{Title: strPtr("a\xffb")}, "title", MsgInvalidString},
		{
			"decode error wins",
			TaskPayload{Title: strPtr("ok"), DecodeErrors: FieldErrors{"completed": {MsgInvalidBoolean}}},
			"completed", MsgInvalidBoolean,
		},
	}

	for _, tc := range cases {
		err := ValidateForCreate(tc.payload)
		fields, ok := IsValidationError(err)
		if !ok {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		msgs := fields[tc.field]
		if len(msgs) != 1 || msgs[0] != tc.want {
			t.Fatalf("%s: field %s messages = %v; want [%s]", tc.name, tc.field, msgs, tc.want)
		}
	}
}

func TestValidateForCreate_TitleAtMaxLength(t *testing.T) {
	p := TaskPayload{Title: strPtr(strings.Repeat("я", TaskTitleMaxLength))}
	if err := ValidateForCreate(p); err != nil {
		t.Fatalf("expected 255 runes to be accepted, got %v", err)
	}
}

func TestValidateForUpdate_RequiresEveryField(t *testing.T) {
	err := ValidateForUpdate(TaskPayload{})
	fields, ok := IsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"title", "description", "completed"} {
		if len(fields[f]) == 0 || fields[f][0] != MsgFieldRequired {
			t.Fatalf("expected %s to be required, got %v", f, fields)
		}
	}
}

func TestValidateForUpdate_RejectsNulCharacters(t *testing.T) {
	p := TaskPayload{Title: strPtr("t"), Description: strPtr("line\x00"), Completed: boolPtr(false)}
	fields, ok := IsValidationError(ValidateForUpdate(p))
	if !ok {
		t.Fatalf("expected validation error")
	}
	if len(fields["description"]) != 1 || fields["description"][0] != MsgNullCharacters {
		t.Fatalf("unexpected field errors %v", fields)
	}
	if _, ok := fields["title"]; ok {
		t.Fatalf("title must pass, got %v", fields)
	}
}

func TestValidateForUpdate_FalseAndEmptyArePresent(t *testing.T) {
	p := TaskPayload{Title: strPtr("t"), Description: strPtr(""), Completed: boolPtr(false)}
	if err := ValidateForUpdate(p); err != nil {
		t.Fatalf("expected explicit false/empty values to be accepted, got %v", err)
	}

	task := &Task{ID: 7, Title: "old", Description: "old", Completed: true}
	p.ApplyTo(task)
	if task.ID != 7 || task.Title != "t" || task.Description != "" || task.Completed {
		t.Fatalf("unexpected task after apply: %+v", task)
	}
}

func TestNormalize_TrimsText(t *testing.T) {
	p := TaskPayload{Title: strPtr("  "), Description: strPtr(" d ")}
	p.Normalize()
	if *p.Title != "" || *p.Description != "d" {
		t.Fatalf("unexpected normalized payload: %q %q", *p.Title, *p.Description)
	}
	fields, ok := IsValidationError(ValidateForCreate(p))
	if !ok || fields["title"][0] != MsgFieldBlank {
		t.Fatalf("expected whitespace title to be blank, got %v", fields)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := error(&ValidationError{Fields: FieldErrors{"title": {MsgFieldRequired}}})
	if !strings.Contains(err.Error(), "title: This field is required.") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if _, ok := IsValidationError(errors.New("other")); ok {
		t.Fatalf("plain error must not be a validation error")
	}
}
