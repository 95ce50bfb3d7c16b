package utils

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	config "github.com/kamande0/meeting_desk/configs"
	"github.com/kamande0/meeting_desk/models"
	"gorm.io/gorm"
)

const joinTokenLength = 10
const letterBytes = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateJoinURL builds a unique meeting-join URL under MEETING_BASE_URL.
// Falls back to a uuid token if the uniqueness check cannot be performed.
func GenerateJoinURL(db *gorm.DB) string {
	base := config.Config("MEETING_BASE_URL")
	if base == "" {
		base = "https://meet.kamande.dev/"
	}

	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempts := 0; attempts < 5; attempts++ {
		b := make([]byte, joinTokenLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		url := base + string(b)

		var meeting models.Meeting
		err := db.Where("join_url = ?", url).First(&meeting).Error
		if err == gorm.ErrRecordNotFound {
			return url
		}
		if err != nil {
			break
		}
	}
	return base + uuid.NewString()
}
