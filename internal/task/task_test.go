package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBucket(t *testing.T) {
	tests := []struct {
		in      string
		want    Bucket
		wantErr bool
	}{
		{in: "daily", want: BucketDaily},
		{in: "DAILY", want: BucketDaily},
		{in: " Tomorrow ", want: BucketTomorrow},
		{in: "PLANNED", want: BucketPlanned},
		{in: "", wantErr: true},
		{in: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBucket(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBucket)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("high")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, got)

	got, err = ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityNone, got)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidate(t *testing.T) {
	base := Task{ID: 1, Title: "Write docs", Bucket: BucketDaily}
	require.NoError(t, base.Validate())

	blank := base
	blank.Title = "   "
	err := blank.Validate()
	assert.ErrorIs(t, err, ErrValidation)
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "title", fe.Field)

	noBucket := base
	noBucket.Bucket = ""
	assert.ErrorIs(t, noBucket.Validate(), ErrInvalidBucket)

	done := base
	done.Completed = true
	assert.ErrorIs(t, done.Validate(), ErrValidation)

	padded := base
	padded.Title = "  Write docs "
	assert.NoError(t, padded.Validate())

	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dated := base
	dated.DueDate = &due
	err = dated.Validate()
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "due_date", fe.Field)

	dated.Bucket = BucketPlanned
	assert.NoError(t, dated.Validate())
}

func TestApply(t *testing.T) {
	due := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	orig := Task{ID: 4, Title: "Team meeting planning", Bucket: BucketPlanned, DueDate: &due}

	t.Run("title is trimmed", func(t *testing.T) {
		tk := orig.Clone()
		title := "  New title "
		require.NoError(t, tk.Apply(Patch{Title: &title}))
		assert.Equal(t, "New title", tk.Title)
		assert.Equal(t, orig.DueDate, tk.DueDate)
	})

	t.Run("leaving planned drops the due date", func(t *testing.T) {
		tk := orig.Clone()
		b := BucketDaily
		require.NoError(t, tk.Apply(Patch{Bucket: &b}))
		assert.Nil(t, tk.DueDate)
	})

	t.Run("zero due date clears", func(t *testing.T) {
		tk := orig.Clone()
		require.NoError(t, tk.Apply(Patch{DueDate: &time.Time{}}))
		assert.Nil(t, tk.DueDate)
	})

	t.Run("failed patch leaves task untouched", func(t *testing.T) {
		tk := orig.Clone()
		title := "ok"
		bad := Bucket("someday")
		err := tk.Apply(Patch{Title: &title, Bucket: &bad})
		assert.ErrorIs(t, err, ErrInvalidBucket)
		assert.Equal(t, orig.Title, tk.Title)
	})
}

func TestCloneDoesNotAlias(t *testing.T) {
	now := time.Now()
	orig := Task{ID: 1, UpdatedAt: &now}
	c := orig.Clone()
	*c.UpdatedAt = now.Add(time.Hour)
	assert.Equal(t, now, *orig.UpdatedAt)
}
