package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudySet(t *testing.T) {
	userID := uuid.New()
	folderID := uuid.New()

	set, err := NewStudySet(userID, " Spanish animals ", "", &folderID)
	require.NoError(t, err)
	assert.Equal(t, "Spanish animals", set.Name)
	assert.Equal(t, &folderID, set.FolderID)
	assert.True(t, set.IsOwnedBy(userID))
	assert.False(t, set.IsOwnedBy(uuid.New()))

	_, err = NewStudySet(userID, "   ", "", nil)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewStudySet(uuid.Nil, "name", "", nil)
	assert.ErrorIs(t, err, ErrEmptyUserID)

	nilFolder := uuid.Nil
	_, err = NewStudySet(userID, "name", "", &nilFolder)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = NewStudySet(userID, strings.Repeat("n", MaxNameLength+1), "", nil)
	assert.ErrorIs(t, err, ErrFieldTooLong)
}

func TestStudySetUpdate(t *testing.T) {
	set, err := NewStudySet(uuid.New(), "Old", "old", nil)
	require.NoError(t, err)
	before := set.UpdatedAt

	folderID := uuid.New()
	require.NoError(t, set.Update("New", "desc", &folderID))
	assert.Equal(t, "New", set.Name)
	assert.Equal(t, "desc", set.Description)
	assert.Equal(t, &folderID, set.FolderID)
	assert.False(t, set.UpdatedAt.Before(before))

	err = set.Update("", "desc", nil)
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Equal(t, "New", set.Name, "failed update leaves the set untouched")
}

func TestFolder(t *testing.T) {
	userID := uuid.New()

	folder, err := NewFolder(userID, "Languages", "everything")
	require.NoError(t, err)
	assert.True(t, folder.IsOwnedBy(userID))

	require.NoError(t, folder.Rename(" Spanish ", ""))
	assert.Equal(t, "Spanish", folder.Name)

	assert.ErrorIs(t, folder.Rename("", ""), ErrEmptyName)
	assert.Equal(t, "Spanish", folder.Name)

	_, err = NewFolder(uuid.Nil, "x", "")
	assert.ErrorIs(t, err, ErrEmptyUserID)
}

func TestParseStudyMode(t *testing.T) {
	tests := []struct {
		in      string
		want    StudyMode
		wantErr bool
	}{
		{in: "flashcards", want: StudyModeFlashcards},
		{in: " Multiple-Choice ", want: StudyModeMultipleChoice},
		{in: "MATCHING", want: StudyModeMatching},
		{in: "quiz", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseStudyMode(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStudyMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
