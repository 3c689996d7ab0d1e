package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid title", "Order rebar", false},
		{"valid with punctuation", "Check pump #2", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Title(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Title(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestProjectName(t *testing.T) {
	assert.NoError(t, ProjectName("Riverside Tower"))
	assert.Error(t, ProjectName(""))
	assert.Error(t, ProjectName("  "))
}

func TestDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty is accepted", "", false},
		{"valid date", "2024-06-15", false},
		{"month out of range", "2024-13-01", true},
		{"missing padding", "2024-6-1", true},
		{"timestamp rejected", "2024-06-15T00:00:00Z", true},
		{"garbage", "soon", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Date(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Date(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestRequiredDate(t *testing.T) {
	assert.NoError(t, RequiredDate("2024-06-15"))
	assert.Error(t, RequiredDate(""))
	assert.Error(t, RequiredDate("never"))
}

func TestPriority(t *testing.T) {
	for _, p := range []string{"critical", "high", "medium", "low", ""} {
		assert.NoError(t, Priority(p), "priority %q", p)
	}

	assert.Error(t, Priority("urgent"))
	assert.Error(t, Priority("High"))
}

func TestStatus(t *testing.T) {
	for _, s := range []string{"open", "in_progress", "blocked", "done", "cancelled"} {
		assert.NoError(t, Status(s), "status %q", s)
	}

	assert.Error(t, Status(""))
	assert.Error(t, Status("in progress"))
}

func TestFieldValidators(t *testing.T) {
	// Field variants wrap the same checks with the field name attached.
	assert.NoError(t, TitleField("title", "Order rebar"))
	assert.Error(t, TitleField("title", ""))

	assert.NoError(t, DateField("due", "2024-06-15"))
	assert.Error(t, DateField("due", "bogus"))

	assert.NoError(t, PriorityField("priority", "high"))
	assert.Error(t, StatusField("status", "bogus"))
}
