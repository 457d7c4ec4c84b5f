package store

import (
	"context"
	"testing"

	"github.com/payday-community/riskengine/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := SetupDatabase("sqlite://:memory:", 1)
	require.NoError(t, err)
	return db
}

func TestWordStoreCRUD(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	words := NewWordStore(testDB(t))

	created, err := words.CreateWord(ctx, "赌博", CategoryIllegal)
	require.NoError(err)
	assert.NotEmpty(created.ID)
	assert.True(created.IsActive)

	// duplicate word rejected
	_, err = words.CreateWord(ctx, "赌博", CategoryOther)
	assert.ErrorIs(err, ErrDuplicateWord)

	_, err = words.CreateWord(ctx, "色情", CategoryPorn)
	require.NoError(err)

	active, err := words.ActiveWords(ctx)
	require.NoError(err)
	assert.ElementsMatch([]string{"赌博", "色情"}, active)

	// disabling a word removes it from the active list
	inactive := false
	updated, err := words.UpdateWord(ctx, created.ID, nil, nil, &inactive)
	require.NoError(err)
	assert.False(updated.IsActive)

	active, err = words.ActiveWords(ctx)
	require.NoError(err)
	assert.Equal([]string{"色情"}, active)

	// category filter
	listed, err := words.ListWords(ctx, CategoryPorn, nil)
	require.NoError(err)
	require.Len(listed, 1)
	assert.Equal("色情", listed[0].Word)

	// active filter still sees the disabled word
	listed, err = words.ListWords(ctx, "", &inactive)
	require.NoError(err)
	require.Len(listed, 1)
	assert.Equal("赌博", listed[0].Word)

	require.NoError(words.DeleteWord(ctx, created.ID))
	assert.ErrorIs(words.DeleteWord(ctx, created.ID), ErrNotFound)
	_, err = words.GetWord(ctx, created.ID)
	assert.ErrorIs(err, ErrNotFound)
}

func TestContentStoreVerdicts(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	db := testDB(t)
	content := NewContentStore(db)

	post := Post{
		ID:      NewID(),
		UserID:  "user-1",
		Content: "发工资了，开心",
		Images:  StringList{"https://cdn.example.com/a.jpg"},
	}
	require.NoError(db.Create(&post).Error)

	item, err := content.GetContent(ctx, risk.KindPost, post.ID)
	require.NoError(err)
	assert.Equal(risk.KindPost, item.Kind)
	assert.Equal("user-1", item.UserID)
	assert.Equal(post.Content, item.Text)
	assert.Equal([]string{"https://cdn.example.com/a.jpg"}, item.Images)

	_, err = content.GetContent(ctx, risk.KindPost, "missing")
	assert.ErrorIs(err, ErrNotFound)

	require.NoError(content.SetRiskVerdict(ctx, risk.KindPost, post.ID, risk.StatusRejected, 90, "含违规内容"))

	var reloaded Post
	require.NoError(db.First(&reloaded, "id = ?", post.ID).Error)
	assert.Equal("rejected", reloaded.RiskStatus)
	require.NotNil(reloaded.RiskScore)
	assert.Equal(90, *reloaded.RiskScore)
	assert.Equal("含违规内容", reloaded.RiskReason)

	// idempotent overwrite, not accumulation
	require.NoError(content.SetRiskVerdict(ctx, risk.KindPost, post.ID, risk.StatusApproved, 0, ""))
	require.NoError(db.First(&reloaded, "id = ?", post.ID).Error)
	assert.Equal("approved", reloaded.RiskStatus)
	assert.Equal(0, *reloaded.RiskScore)

	assert.ErrorIs(content.SetRiskVerdict(ctx, risk.KindPost, "missing", risk.StatusApproved, 0, ""), ErrNotFound)
}

func TestContentStoreComments(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	db := testDB(t)
	content := NewContentStore(db)

	comment := Comment{
		ID:      NewID(),
		PostID:  "post-1",
		UserID:  "user-2",
		Content: "同感",
	}
	require.NoError(db.Create(&comment).Error)

	item, err := content.GetContent(ctx, risk.KindComment, comment.ID)
	require.NoError(err)
	assert.Equal(risk.KindComment, item.Kind)
	assert.Empty(item.Images)

	require.NoError(content.SetRiskVerdict(ctx, risk.KindComment, comment.ID, risk.StatusPending, 50, "文本需要人工审核"))
}

func TestPendingManualAndResolve(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	db := testDB(t)
	content := NewContentStore(db)

	clean := Post{ID: NewID(), UserID: "u1", Content: "ok"}
	flagged := Post{ID: NewID(), UserID: "u2", Content: "borderline"}
	require.NoError(db.Create(&clean).Error)
	require.NoError(db.Create(&flagged).Error)

	require.NoError(content.SetRiskVerdict(ctx, risk.KindPost, clean.ID, risk.StatusApproved, 0, ""))
	require.NoError(content.SetRiskVerdict(ctx, risk.KindPost, flagged.ID, risk.StatusPending, 50, "文本需要人工审核"))

	items, err := content.PendingManual(ctx, 10)
	require.NoError(err)
	require.Len(items, 1)
	assert.Equal(flagged.ID, items[0].ID)
	assert.Equal(50, items[0].RiskScore)

	require.NoError(content.ResolveManual(ctx, risk.KindPost, flagged.ID, false, "人工复核不通过"))

	var reloaded Post
	require.NoError(db.First(&reloaded, "id = ?", flagged.ID).Error)
	assert.Equal("rejected", reloaded.RiskStatus)
	assert.Equal("人工复核不通过", reloaded.RiskReason)

	items, err = content.PendingManual(ctx, 10)
	require.NoError(err)
	assert.Empty(items)
}

func TestNotificationStore(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	db := testDB(t)
	notifs := NewNotificationStore(db)

	require.NoError(notifs.CreateSystemNotification(ctx, "user-1", "内容未通过审核", "含违规内容", "post-1"))

	var recs []Notification
	require.NoError(db.Find(&recs).Error)
	require.Len(recs, 1)
	assert.Equal("system", recs[0].Type)
	assert.Equal("user-1", recs[0].UserID)
	assert.Equal("post-1", recs[0].RelatedID)
	assert.False(recs[0].IsRead)
}
