package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Vithyatharshanaa/ctf-buddy-learn/database"
	"github.com/Vithyatharshanaa/ctf-buddy-learn/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 用独立命名的内存 SQLite 顶替全局 DB，
// 唯一索引等约束由 AutoMigrate 建出，行为与线上一致
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Challenge{}, &models.UserSolve{}, &models.SubmissionLog{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	old := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = old
		sqlDB.Close()
	})
}

func seedChallenge(t *testing.T, title, flag string, points uint) *models.Challenge {
	t.Helper()
	ch := models.Challenge{
		Title:       title,
		Description: "test challenge",
		Category:    models.CategoryWeb,
		Difficulty:  models.DifficultyEasy,
		Points:      points,
		Flag:        flag,
	}
	if err := database.DB.Create(&ch).Error; err != nil {
		t.Fatalf("failed to seed challenge: %v", err)
	}
	return &ch
}

func countSolves(t *testing.T, userID, challengeID string) int64 {
	t.Helper()
	var n int64
	if err := database.DB.Model(&models.UserSolve{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&n).Error; err != nil {
		t.Fatalf("failed to count solves: %v", err)
	}
	return n
}

func TestSubmitFlag_FirstCorrectSubmission(t *testing.T) {
	setupTestDB(t)
	ch := seedChallenge(t, "Hello Web", "CTF{hello}", 50)

	result, err := SubmitFlag(context.Background(), "user-1", ch.ID, "CTF{hello}", "127.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != SubmitCorrect {
		t.Fatalf("expected SubmitCorrect, got %v", result.Status)
	}
	if result.Points != 50 {
		t.Errorf("expected 50 points, got %d", result.Points)
	}
	if got := countSolves(t, "user-1", ch.ID); got != 1 {
		t.Errorf("expected exactly 1 solve record, got %d", got)
	}
}

func TestSubmitFlag_RepeatSubmissionIsIdempotent(t *testing.T) {
	setupTestDB(t)
	ch := seedChallenge(t, "Hello Web", "CTF{hello}", 50)

	if _, err := SubmitFlag(context.Background(), "user-1", ch.ID, "CTF{hello}", ""); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	result, err := SubmitFlag(context.Background(), "user-1", ch.ID, "CTF{hello}", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != SubmitAlreadySolved {
		t.Fatalf("expected SubmitAlreadySolved, got %v", result.Status)
	}
	if got := countSolves(t, "user-1", ch.ID); got != 1 {
		t.Errorf("solve records must not exceed 1, got %d", got)
	}
}

func TestSubmitFlag_IncorrectFlagHasNoSideEffect(t *testing.T) {
	setupTestDB(t)
	ch := seedChallenge(t, "Hello Web", "CTF{hello}", 50)

	result, err := SubmitFlag(context.Background(), "user-1", ch.ID, "CTF{wrong}", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != SubmitIncorrect {
		t.Fatalf("expected SubmitIncorrect, got %v", result.Status)
	}
	if got := countSolves(t, "user-1", ch.ID); got != 0 {
		t.Errorf("incorrect submission must not create a solve record, got %d", got)
	}
}

func TestSubmitFlag_ComparisonIsCaseSensitive(t *testing.T) {
	setupTestDB(t)
	ch := seedChallenge(t, "Hello Web", "CTF{Flag}", 50)

	result, err := SubmitFlag(context.Background(), "user-1", ch.ID, "ctf{flag}", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != SubmitIncorrect {
		t.Fatalf("case-insensitive match must be rejected, got %v", result.Status)
	}
}

func TestSubmitFlag_UnknownChallenge(t *testing.T) {
	setupTestDB(t)

	_, err := SubmitFlag(context.Background(), "user-1", "no-such-id", "CTF{hello}", "")
	if !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestSubmitFlag_DifferentUsersSolveIndependently(t *testing.T) {
	setupTestDB(t)
	ch := seedChallenge(t, "Hello Web", "CTF{hello}", 50)

	for _, user := range []string{"user-1", "user-2"} {
		result, err := SubmitFlag(context.Background(), user, ch.ID, "CTF{hello}", "")
		if err != nil {
			t.Fatalf("submission for %s failed: %v", user, err)
		}
		if result.Status != SubmitCorrect {
			t.Fatalf("expected SubmitCorrect for %s, got %v", user, result.Status)
		}
	}
}

func TestSubmitFlag_ConcurrentDuplicatesAwardOnce(t *testing.T) {
	setupTestDB(t)
	ch := seedChallenge(t, "Hello Web", "CTF{hello}", 50)

	const workers = 8
	results := make([]SubmitStatus, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := SubmitFlag(context.Background(), "user-1", ch.ID, "CTF{hello}", "")
			errs[i] = err
			if r != nil {
				results[i] = r.Status
			}
		}(i)
	}
	wg.Wait()

	correct := 0
	for i := 0; i < workers; i++ {
		switch {
		case errs[i] == nil && results[i] == SubmitCorrect:
			correct++
		case errs[i] == nil && results[i] == SubmitAlreadySolved:
		case errors.Is(errs[i], ErrRecordSolve):
			// 唯一索引挡下的并发重复，预期内
		default:
			t.Errorf("worker %d: unexpected outcome result=%v err=%v", i, results[i], errs[i])
		}
	}

	if correct != 1 {
		t.Errorf("expected exactly one winning submission, got %d", correct)
	}
	if got := countSolves(t, "user-1", ch.ID); got != 1 {
		t.Errorf("expected exactly 1 solve record under concurrency, got %d", got)
	}
}

func TestSubmitFlag_DuplicateInsertHitsUniqueIndex(t *testing.T) {
	setupTestDB(t)
	ch := seedChallenge(t, "Hello Web", "CTF{hello}", 50)

	first := models.UserSolve{UserID: "user-1", ChallengeID: ch.ID}
	if err := database.DB.Create(&first).Error; err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	dup := models.UserSolve{UserID: "user-1", ChallengeID: ch.ID}
	err := database.DB.Create(&dup).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestSubmitFlag_AuditLogNeverStoresFlag(t *testing.T) {
	setupTestDB(t)
	ch := seedChallenge(t, "Hello Web", "CTF{hello}", 50)

	if _, err := SubmitFlag(context.Background(), "user-1", ch.ID, "CTF{hello}", "10.0.0.1"); err != nil {
		t.Fatalf("submission failed: %v", err)
	}
	if _, err := SubmitFlag(context.Background(), "user-2", ch.ID, "CTF{nope}", "10.0.0.2"); err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	var logs []models.SubmissionLog
	if err := database.DB.Order("id asc").Find(&logs).Error; err != nil {
		t.Fatalf("failed to read audit logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(logs))
	}
	if logs[0].Result != models.FlagResultCorrect || logs[1].Result != models.FlagResultWrong {
		t.Errorf("unexpected audit results: %v, %v", logs[0].Result, logs[1].Result)
	}
	// 结构上就没有存 flag 的字段，这里确认 IP 等上下文落了库
	if logs[0].IPAddress != "10.0.0.1" {
		t.Errorf("expected audit ip 10.0.0.1, got %s", logs[0].IPAddress)
	}
}
