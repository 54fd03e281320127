package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"examforge/internal/cache"
	"examforge/internal/model"
	"examforge/internal/service"
)

// Plants a demo listening draft into Redis for manual testing of the
// questions phase and the submission flow.
func main() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to ping Redis: %v", err)
	}

	drafts := cache.NewDraftCache(rdb)

	draft := service.NewDraft("admin_seed", model.KindListening, "lesson_42")
	draft.Parent.Title = "Airport announcements"
	draft.Parent.DurationSeconds = 95
	draft.Parent.Asset = &model.UploadedAsset{
		URL:             "https://media.example.com/demo/airport.mp3",
		Kind:            model.AssetAudio,
		DurationSeconds: 95,
	}
	draft.Phase = model.PhaseQuestions
	draft.Questions = []model.QuestionDraft{
		{
			Text:          "Which gate is the flight to Lisbon leaving from?",
			Points:        2,
			Order:         1,
			Options:       []string{"Gate 4", "Gate 14", "Gate 40"},
			CorrectAnswer: "Gate 14",
			Explanation:   "The announcer corrects herself after the first call.",
		},
		{
			Text:          "Why is the departure delayed?",
			Points:        3,
			Order:         2,
			Options:       []string{"Weather", "A late crew", "A technical check"},
			CorrectAnswer: "A technical check",
		},
	}

	if err := drafts.Set(ctx, &draft); err != nil {
		log.Fatalf("Failed to store draft: %v", err)
	}

	fmt.Printf("Seeded draft %s (kind=%s, %d questions)\n", draft.ID, draft.Kind, len(draft.Questions))
}
