package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"lecture-quiz/internal/adapter"
	"lecture-quiz/internal/cache"
	"lecture-quiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuiz() *domain.Quiz {
	return domain.NewQuiz("01HZX3M6Q8K1V2W3X4Y5Z6A7B8", "Arithmetic", domain.MultipleChoice, []*domain.Question{
		domain.NewQuestion(domain.MultipleChoice, "2+2?", "4", []string{"3", "4", "5", "6"}, "basic arithmetic"),
		domain.NewQuestion(domain.ShortAnswer, "Name the operation.", "addition", nil, ""),
	})
}

func TestQuizStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewQuizStore(adapter.NewMemoryCache(), time.Hour)
	quiz := sampleQuiz()

	require.NoError(t, store.Save(ctx, quiz))

	got, err := store.Get(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, got.ID)
	assert.Equal(t, quiz.Title, got.Title)
	assert.Equal(t, quiz.RequestedType, got.RequestedType)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, quiz.Questions[0], got.Questions[0])
	assert.NotNil(t, got.Questions[1].Options)
	assert.Empty(t, got.Questions[1].Options)
	assert.True(t, quiz.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, store.Delete(ctx, quiz.ID))
	_, err = store.Get(ctx, quiz.ID)
	assert.True(t, domain.IsCode(err, domain.CodeQuizNotFound))
}

func TestQuizStore_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing id", func(t *testing.T) {
		store := NewQuizStore(adapter.NewMemoryCache(), 0)
		err := store.Save(ctx, &domain.Quiz{})
		assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))
	})

	t.Run("unknown quiz", func(t *testing.T) {
		store := NewQuizStore(adapter.NewMemoryCache(), 0)
		_, err := store.Get(ctx, "nope")
		assert.True(t, domain.IsCode(err, domain.CodeQuizNotFound))
	})

	t.Run("corrupt entry", func(t *testing.T) {
		mem := adapter.NewMemoryCache()
		require.NoError(t, mem.Set(ctx, cache.QuizKey("bad"), "{not json", 0))
		_, err := NewQuizStore(mem, 0).Get(ctx, "bad")
		assert.True(t, domain.IsCode(err, domain.CodeInternal))
	})
}

func TestQuizStore_Redis(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := NewQuizStore(adapter.NewRedisCache(db), time.Hour)

	mock.ExpectGet(cache.QuizKey("gone")).RedisNil()
	_, err := store.Get(ctx, "gone")
	assert.True(t, domain.IsCode(err, domain.CodeQuizNotFound))

	mock.ExpectGet(cache.QuizKey("flaky")).SetErr(errors.New("i/o timeout"))
	_, err = store.Get(ctx, "flaky")
	assert.True(t, domain.IsCode(err, domain.CodeInternal))

	assert.NoError(t, mock.ExpectationsWereMet())
}
