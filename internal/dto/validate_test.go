package dto

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func TestCreateIdentityAreaRequestValidate(t *testing.T) {
	req := CreateIdentityAreaRequest{Name: "Health"}
	assert.Empty(t, req.Validate())

	req = CreateIdentityAreaRequest{}
	assert.Len(t, req.Validate(), 1)

	req = CreateIdentityAreaRequest{Name: strings.Repeat("x", 101)}
	assert.Len(t, req.Validate(), 1)

	req = CreateIdentityAreaRequest{Name: "Health", Color: strPtr("blue")}
	assert.Len(t, req.Validate(), 1)

	req = CreateIdentityAreaRequest{Name: "Health", Color: strPtr("#00FF00"), Order: intPtr(2)}
	assert.Empty(t, req.Validate())

	req = CreateIdentityAreaRequest{Name: "Health", Order: intPtr(-1)}
	assert.Len(t, req.Validate(), 1)
}

func TestUpdateIdentityAreaRequestValidate(t *testing.T) {
	req := UpdateIdentityAreaRequest{}
	assert.Empty(t, req.Validate(), "all-optional update accepts an empty body")

	req = UpdateIdentityAreaRequest{Name: strPtr("")}
	assert.Len(t, req.Validate(), 1)

	req = UpdateIdentityAreaRequest{Color: strPtr("#12345")}
	assert.Len(t, req.Validate(), 1)
}

func TestReorderAreasRequestValidate(t *testing.T) {
	req := ReorderAreasRequest{}
	assert.Len(t, req.Validate(), 1)

	req = ReorderAreasRequest{Areas: []ReorderItem{{ID: uuid.New(), Order: 0}}}
	assert.Empty(t, req.Validate())

	req = ReorderAreasRequest{Areas: []ReorderItem{{ID: uuid.New(), Order: -3}}}
	assert.Len(t, req.Validate(), 1)
}

func TestCreateAtomicSystemRequestValidate(t *testing.T) {
	valid := CreateAtomicSystemRequest{
		IdentityAreaID: uuid.New(),
		Name:           "Morning run",
		Cue:            "Shoes by the door",
		Craving:        "Feel energized",
		Response:       "Run 2km",
		Reward:         "Smoothie",
	}
	assert.Empty(t, valid.Validate())

	// All four habit-loop components are required independently.
	empty := CreateAtomicSystemRequest{}
	assert.Len(t, empty.Validate(), 6)

	req := valid
	req.Frequency = strPtr("MONTHLY")
	assert.Len(t, req.Validate(), 1)

	req = valid
	req.Frequency = strPtr("WEEKLY")
	req.Difficulty = intPtr(3)
	req.EstimatedMin = intPtr(30)
	assert.Empty(t, req.Validate())

	req = valid
	req.EstimatedMin = intPtr(0)
	assert.Len(t, req.Validate(), 1)

	req = valid
	req.EstimatedMin = intPtr(481)
	assert.Len(t, req.Validate(), 1)

	req = valid
	req.Difficulty = intPtr(6)
	assert.Len(t, req.Validate(), 1)
}

func TestUpdateAtomicSystemRequestValidate(t *testing.T) {
	req := UpdateAtomicSystemRequest{}
	assert.Empty(t, req.Validate())

	req = UpdateAtomicSystemRequest{Cue: strPtr("")}
	assert.Len(t, req.Validate(), 1)

	req = UpdateAtomicSystemRequest{Name: strPtr(""), Frequency: strPtr("NEVER")}
	assert.Len(t, req.Validate(), 2)
}

func TestExecuteSystemRequestValidate(t *testing.T) {
	req := ExecuteSystemRequest{}
	assert.Empty(t, req.Validate(), "quality defaults when omitted")

	req = ExecuteSystemRequest{Quality: intPtr(5)}
	assert.Empty(t, req.Validate())

	req = ExecuteSystemRequest{Quality: intPtr(0)}
	assert.Len(t, req.Validate(), 1)

	req = ExecuteSystemRequest{Quality: intPtr(6)}
	assert.Len(t, req.Validate(), 1)
}

func TestCreateIdentityGoalRequestValidate(t *testing.T) {
	valid := CreateIdentityGoalRequest{
		IdentityAreaID: uuid.New(),
		Title:          "Run a marathon",
	}
	assert.Empty(t, valid.Validate())

	req := CreateIdentityGoalRequest{}
	assert.Len(t, req.Validate(), 2)

	req = valid
	req.Title = strings.Repeat("x", 201)
	assert.Len(t, req.Validate(), 1)

	req = valid
	req.GoalType = strPtr("SOMEDAY")
	assert.Len(t, req.Validate(), 1)

	req = valid
	req.GoalType = strPtr("ABOVE")
	req.TargetValue = floatPtr(42.2)
	req.Unit = strPtr("km")
	assert.Empty(t, req.Validate())

	req = valid
	req.Unit = strPtr(strings.Repeat("u", 51))
	assert.Len(t, req.Validate(), 1)
}

func TestUpdateGoalProgressRequestValidate(t *testing.T) {
	req := UpdateGoalProgressRequest{}
	assert.Len(t, req.Validate(), 1, "currentValue is mandatory")

	req = UpdateGoalProgressRequest{CurrentValue: floatPtr(10)}
	assert.Empty(t, req.Validate())
}

func TestReorderGoalsRequestValidate(t *testing.T) {
	req := ReorderGoalsRequest{}
	assert.Len(t, req.Validate(), 1)

	req = ReorderGoalsRequest{GoalIDs: []uuid.UUID{uuid.New()}}
	assert.Empty(t, req.Validate())
}
