package conversation

import (
	"testing"

	"medichat/medichat/utils/logging"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.InitTestLogger()
	m.Run()
}

func Test_New_Repository_Synthesizes_One_Conversation(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)

	req.Equal(1, repo.Count())
	cur := repo.Current()
	req.NotNil(cur)
	req.NotEmpty(cur.ID)
	req.NotEmpty(cur.Title)
	req.Empty(cur.Messages)
}

func Test_Collection_Never_Empty(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)

	// delete everything we can find, repeatedly
	for i := 0; i < 5; i++ {
		for _, c := range repo.List() {
			repo.Delete(c.ID)
			req.GreaterOrEqual(repo.Count(), 1)
			req.NotNil(repo.Current())
		}
	}
}

func Test_Delete_Last_Conversation_Synthesizes_Replacement(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)
	c0 := repo.Current()

	repo.Delete(c0.ID)

	req.Equal(1, repo.Count())
	replacement := repo.Current()
	req.NotEqual(c0.ID, replacement.ID)
	req.Equal(replacement.ID, repo.CurrentID())
}

func Test_Delete_Current_Selects_First_Remaining(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)
	first := repo.Current()
	second := repo.StartNew()
	req.Equal(second.ID, repo.CurrentID())

	repo.Delete(second.ID)

	// selection falls back to index 0 of insertion order
	req.Equal(first.ID, repo.CurrentID())
}

func Test_Delete_NonCurrent_Keeps_Selection(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)
	first := repo.Current()
	second := repo.Create()

	repo.Delete(second.ID)

	req.Equal(first.ID, repo.CurrentID())
}

func Test_Select_Unknown_Id_Fails(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)

	err := repo.Select("nope")

	req.ErrorIs(err, ErrNotFound)
	req.NotNil(repo.Current())
}

func Test_Rename_Empty_Falls_Back_To_Default_Title(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)
	id := repo.CurrentID()

	repo.Rename(id, "Cardiology questions")
	req.Equal("Cardiology questions", repo.Current().Title)

	repo.Rename(id, "")
	req.NotEmpty(repo.Current().Title)

	repo.Rename(id, "   ")
	req.NotEmpty(repo.Current().Title)
	req.NotEqual("   ", repo.Current().Title)
}

func Test_Append_Preserves_Order_And_Unique_Ids(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)
	repo.Create()

	contents := []string{"one", "two", "three", "four", "five"}
	for _, c := range contents {
		repo.Append(RoleUser, c, "", "")
	}

	msgs := repo.Current().Messages
	req.Len(msgs, len(contents))
	seen := map[string]bool{}
	for i, m := range msgs {
		req.Equal(contents[i], m.Content)
		req.False(seen[m.ID], "duplicate message id %s", m.ID)
		seen[m.ID] = true
	}
}

func Test_List_Sorts_Most_Recent_First(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)
	older := repo.Current()
	newer := repo.Create()
	older.CreatedAt = 100
	newer.CreatedAt = 200

	listed := repo.List()

	req.Equal(newer.ID, listed[0].ID)
	req.Equal(older.ID, listed[1].ID)
}

func Test_CanDelete_Guard(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)
	req.False(repo.CanDelete())

	repo.Create()
	req.True(repo.CanDelete())
}

func Test_AppendTo_Unknown_Conversation_Fails(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)

	_, err := repo.AppendTo("gone", RoleAssistant, "late reply", "", "")

	req.ErrorIs(err, ErrNotFound)
}

func Test_AttachContext_Scans_All_Conversations(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)
	msg := repo.Append(RoleUser, "what are visiting hours?", "", "")
	repo.StartNew()
	repo.Append(RoleUser, "unrelated", "", "")

	req.NoError(repo.AttachContext(msg.ID, "General Ward policy"))
	req.ErrorIs(repo.AttachContext("missing", "x"), ErrNotFound)

	found := false
	for _, c := range repo.List() {
		for _, m := range c.Messages {
			if m.ID == msg.ID {
				req.Equal("General Ward policy", m.MedicalContext)
				found = true
			}
		}
	}
	req.True(found)
}

func Test_Categorize_Sets_Metadata(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)
	id := repo.CurrentID()

	req.NoError(repo.Categorize(id, "Cardiology", "diagnostics", []string{"bed_occupancy"}))
	req.ErrorIs(repo.Categorize("missing", "", "", nil), ErrNotFound)

	c := repo.Current()
	req.Equal("Cardiology", c.Department)
	req.Equal("diagnostics", c.MedicalCategory)
	req.Equal([]string{"bed_occupancy"}, c.RelevantMetrics)
}

func Test_Subscribe_Notifies_On_Mutation(t *testing.T) {
	req := require.New(t)
	repo := NewRepository(nil)
	var calls int
	repo.Subscribe(func() { calls++ })

	repo.Create()
	repo.Append(RoleUser, "hi", "", "")
	repo.Rename(repo.CurrentID(), "renamed")

	req.Equal(3, calls)
}
