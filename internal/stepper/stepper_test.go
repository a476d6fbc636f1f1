package stepper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name  string
	Items []string
}

func testFlow() *Flow[form] {
	return NewFlow("test",
		Step[form]{Title: "Name", Valid: func(f form) bool { return f.Name != "" }},
		Step[form]{Title: "Items", Valid: func(f form) bool { return len(f.Items) > 0 }},
		Step[form]{Title: "Optional"},
	)
}

func TestController_Advance(t *testing.T) {
	t.Run("starts on step one", func(t *testing.T) {
		c := testFlow().Start(form{})
		assert.Equal(t, 1, c.Current())
		assert.Equal(t, 3, c.StepCount())
		assert.False(t, c.IsTerminal())
	})

	t.Run("advance is a no-op while the step is invalid", func(t *testing.T) {
		c := testFlow().Start(form{})
		assert.False(t, c.Advance())
		assert.Equal(t, 1, c.Current())
	})

	t.Run("advance moves forward and caps at the last step", func(t *testing.T) {
		c := testFlow().Start(form{Name: "Jane", Items: []string{"a"}})
		assert.True(t, c.Advance())
		assert.True(t, c.Advance())
		assert.Equal(t, 3, c.Current())
		assert.True(t, c.IsTerminal())

		assert.True(t, c.Advance())
		assert.Equal(t, 3, c.Current())
	})

	t.Run("retreat floors at step one", func(t *testing.T) {
		c := testFlow().Start(form{Name: "Jane"})
		require.True(t, c.Advance())
		c.Retreat()
		assert.Equal(t, 1, c.Current())
		c.Retreat()
		assert.Equal(t, 1, c.Current())
	})

	t.Run("state edits are re-evaluated", func(t *testing.T) {
		c := testFlow().Start(form{Name: "Jane"})
		require.True(t, c.Advance())
		assert.False(t, c.Advance())
		c.State.Items = append(c.State.Items, "x")
		assert.True(t, c.Advance())
	})
}

func TestFlow_CanAdvance(t *testing.T) {
	f := testFlow()
	assert.False(t, f.CanAdvance(0, form{Name: "x"}))
	assert.False(t, f.CanAdvance(4, form{Name: "x"}))
	assert.True(t, f.CanAdvance(3, form{}))
}

func TestFlow_Validate(t *testing.T) {
	f := testFlow()

	err := f.Validate(form{Name: "Jane"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStepIncomplete))

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 2, stepErr.Step)
	assert.Equal(t, "Items", stepErr.Title)

	assert.NoError(t, f.Validate(form{Name: "Jane", Items: []string{"a"}}))
}

func TestFlow_Resume(t *testing.T) {
	f := testFlow()
	assert.Equal(t, 3, f.Resume(9, form{}).Current())
	assert.Equal(t, 1, f.Resume(-2, form{}).Current())
	assert.Equal(t, 2, f.Resume(2, form{}).Current())
	assert.Equal(t, []string{"Name", "Items", "Optional"}, f.Titles())
}
