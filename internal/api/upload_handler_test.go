package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubFileStorage records calls instead of talking to a bucket.
type stubFileStorage struct {
	deletedKeys []string
}

func (s *stubFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	return "https://bucket.test/upload/" + objectKey, nil
}

func (s *stubFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://bucket.test/download/" + objectKey, nil
}

func (s *stubFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	s.deletedKeys = append(s.deletedKeys, objectKey)
	return nil
}

func uploadRouter(store *stubFileStorage, trainerID primitive.ObjectID) *gin.Engine {
	handler := NewUploadHandler(store)
	router := gin.New()
	group := router.Group("/uploads", withTrainerID(trainerID))
	group.POST("/video-url", handler.CreateVideoUploadURL)
	group.GET("/video-url", handler.GetVideoDownloadURL)
	group.DELETE("/video-url", handler.DeleteVideo)
	return router
}

func TestDeleteVideo(t *testing.T) {
	trainerID := primitive.NewObjectID()
	ownKey := "videos/" + trainerID.Hex() + "/clip-1"
	foreignKey := "videos/" + primitive.NewObjectID().Hex() + "/clip-2"

	tests := []struct {
		name        string
		objectKey   string
		wantStatus  int
		wantDeleted bool
	}{
		{"own object", ownKey, http.StatusNoContent, true},
		{"missing key", "", http.StatusBadRequest, false},
		{"another trainer's object", foreignKey, http.StatusForbidden, false},
		{"outside the videos prefix", "config/secrets", http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubFileStorage{}
			router := uploadRouter(store, trainerID)

			target := "/uploads/video-url"
			if tt.objectKey != "" {
				target += "?objectKey=" + url.QueryEscape(tt.objectKey)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantDeleted {
				if len(store.deletedKeys) != 1 || store.deletedKeys[0] != tt.objectKey {
					t.Errorf("deleted keys = %v, want [%s]", store.deletedKeys, tt.objectKey)
				}
			} else if len(store.deletedKeys) != 0 {
				t.Errorf("unexpected deletions: %v", store.deletedKeys)
			}
		})
	}
}
