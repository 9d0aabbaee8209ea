package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/service"
	"github.com/GTDGit/catalog_api/internal/service/mocks"
	"github.com/GTDGit/catalog_api/internal/utils"
)

func newPathRouter(ctrl *gomock.Controller, paths service.LearningPathStore) *gin.Engine {
	svc := service.NewLearningPathService(paths, mocks.NewMockProductStore(ctrl), service.NewValidator())
	h := NewLearningPathHandler(svc)
	r := gin.New()
	r.GET("/api/learning-paths", h.ListPaths)
	r.POST("/api/learning-paths", h.CreatePath)
	r.POST("/api/learning-paths/:id/items", h.AddItem)
	r.DELETE("/api/learning-paths/:id/items/:itemId", h.RemoveItem)
	return r
}

func TestLearningPathHandler_CreatePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	paths := mocks.NewMockLearningPathStore(ctrl)
	paths.EXPECT().CreatePath(gomock.Any(), gomock.Any()).
		Return(&models.LearningPath{PathID: 4, Name: "EA Prep", PathType: models.LearningPathSequence, Active: true}, nil)
	r := newPathRouter(ctrl, paths)

	w := doRequest(r, http.MethodPost, "/api/learning-paths", map[string]interface{}{"name": "EA Prep", "path_type": "sequence"})
	assert.Equal(t, 201, w.Code)

	w = doRequest(r, http.MethodPost, "/api/learning-paths", map[string]interface{}{"name": "EA Prep", "path_type": "playlist"})
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Code)
}

func TestLearningPathHandler_AddItem(t *testing.T) {
	offering := uuid.New()

	testCases := []struct {
		name     string
		path     string
		mock     func(paths *mocks.MockLearningPathStore)
		wantCode int
		wantErr  string
	}{
		{name: "bad path id", path: "/api/learning-paths/x/items", wantCode: 400, wantErr: "INVALID_ID"},
		{
			name: "unknown path",
			path: "/api/learning-paths/9/items",
			mock: func(paths *mocks.MockLearningPathStore) {
				paths.EXPECT().AddItem(gomock.Any(), 9, offering, true, gomock.Nil()).Return(nil, utils.ErrLearningPathNotFound)
			},
			wantCode: 404,
			wantErr:  "LEARNING_PATH_NOT_FOUND",
		},
		{
			name: "unknown offering",
			path: "/api/learning-paths/1/items",
			mock: func(paths *mocks.MockLearningPathStore) {
				paths.EXPECT().AddItem(gomock.Any(), 1, offering, true, gomock.Nil()).Return(nil, utils.ErrProductNotFound)
			},
			wantCode: 404,
			wantErr:  "PRODUCT_NOT_FOUND",
		},
		{
			name: "added",
			path: "/api/learning-paths/1/items",
			mock: func(paths *mocks.MockLearningPathStore) {
				paths.EXPECT().AddItem(gomock.Any(), 1, offering, true, gomock.Nil()).
					Return(&models.LearningPathItem{PathItemID: 3, PathID: 1, OfferingID: offering, SequenceOrder: 2, IsRequired: true}, nil)
			},
			wantCode: 201,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			paths := mocks.NewMockLearningPathStore(ctrl)
			if tc.mock != nil {
				tc.mock(paths)
			}

			w := doRequest(newPathRouter(ctrl, paths), http.MethodPost, tc.path, map[string]interface{}{"offering_id": offering.String()})
			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantErr != "" {
				assert.Equal(t, tc.wantErr, decodeError(t, w).Code)
			}
		})
	}
}

func TestLearningPathHandler_RemoveItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	paths := mocks.NewMockLearningPathStore(ctrl)
	paths.EXPECT().RemoveItem(gomock.Any(), 1, 5).Return(nil)
	paths.EXPECT().RemoveItem(gomock.Any(), 1, 6).Return(utils.ErrLearningPathItemNotFound)
	r := newPathRouter(ctrl, paths)

	assert.Equal(t, 204, doRequest(r, http.MethodDelete, "/api/learning-paths/1/items/5", nil).Code)
	assert.Equal(t, 404, doRequest(r, http.MethodDelete, "/api/learning-paths/1/items/6", nil).Code)
	assert.Equal(t, 400, doRequest(r, http.MethodDelete, "/api/learning-paths/1/items/zero", nil).Code)
}
