package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"birthday-backend/internal/features/gift/models"
	"birthday-backend/internal/features/gift/repository"
	"birthday-backend/internal/features/gift/service"
)

type memRepo struct {
	mu    sync.Mutex
	gifts map[string]*models.Gift
}

func newMemRepo() *memRepo {
	return &memRepo{gifts: make(map[string]*models.Gift)}
}

func (r *memRepo) Create(_ context.Context, gift *models.Gift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *gift
	r.gifts[gift.ID] = &clone
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*models.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gift, ok := r.gifts[id]
	if !ok {
		return nil, repository.ErrGiftNotFound
	}
	clone := *gift
	return &clone, nil
}

func (r *memRepo) List(_ context.Context) ([]*models.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gifts := make([]*models.Gift, 0, len(r.gifts))
	for _, gift := range r.gifts {
		clone := *gift
		gifts = append(gifts, &clone)
	}
	sort.SliceStable(gifts, func(i, j int) bool { return gifts[i].Order < gifts[j].Order })
	return gifts, nil
}

func (r *memRepo) Update(_ context.Context, gift *models.Gift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.gifts[gift.ID]; !ok {
		return repository.ErrGiftNotFound
	}
	clone := *gift
	r.gifts[gift.ID] = &clone
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.gifts[id]; !ok {
		return repository.ErrGiftNotFound
	}
	delete(r.gifts, id)
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestRouter() (*gin.Engine, *memRepo) {
	gin.SetMode(gin.TestMode)
	repo := newMemRepo()
	handler := NewGiftHandler(service.NewGiftService(repo))

	router := gin.New()
	api := router.Group("/api")
	noopAuth := func(c *gin.Context) { c.Next() }
	handler.RegisterRoutes(api, noopAuth)
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestCreateGiftReturns201WithGeneratedID(t *testing.T) {
	router, _ := newTestRouter()

	w, env := doJSON(t, router, http.MethodPost, "/api/gifts", gin.H{
		"title": "Book", "order": 0, "enabled": true,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)

	var gift models.Gift
	require.NoError(t, json.Unmarshal(env.Data, &gift))
	assert.NotEmpty(t, gift.ID)
	assert.Equal(t, "Book", gift.Title)
	assert.True(t, gift.VisibleInSelection())
	assert.True(t, gift.VisibleInLuckGame())
}

func TestListGiftsAfterCreate(t *testing.T) {
	router, _ := newTestRouter()

	_, _ = doJSON(t, router, http.MethodPost, "/api/gifts", gin.H{
		"title": "Book", "order": 0, "enabled": true,
	})

	w, env := doJSON(t, router, http.MethodGet, "/api/gifts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var gifts []models.Gift
	require.NoError(t, json.Unmarshal(env.Data, &gifts))
	require.Len(t, gifts, 1)
	assert.Equal(t, "Book", gifts[0].Title)
}

func TestLuckViewEndsWithWinGift(t *testing.T) {
	router, _ := newTestRouter()

	_, _ = doJSON(t, router, http.MethodPost, "/api/gifts", gin.H{
		"title": "Book", "order": 0, "enabled": true,
	})

	w, env := doJSON(t, router, http.MethodGet, "/api/gifts?view=luck", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var gifts []models.Gift
	require.NoError(t, json.Unmarshal(env.Data, &gifts))
	require.Len(t, gifts, 2)
	assert.Equal(t, models.WinGiftID, gifts[1].ID)
}

func TestListRejectsUnknownView(t *testing.T) {
	router, _ := newTestRouter()

	w, env := doJSON(t, router, http.MethodGet, "/api/gifts?view=weird", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestUpdateWithoutIDReturns400(t *testing.T) {
	router, _ := newTestRouter()

	w, env := doJSON(t, router, http.MethodPut, "/api/gifts", gin.H{"title": "No id"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestUpdateUnknownIDReturns404(t *testing.T) {
	router, _ := newTestRouter()

	w, env := doJSON(t, router, http.MethodPut, "/api/gifts", gin.H{"id": "missing", "title": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestDeleteWithoutIDReturns400(t *testing.T) {
	router, _ := newTestRouter()

	w, env := doJSON(t, router, http.MethodDelete, "/api/gifts", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestDeleteUnknownIDReturns404(t *testing.T) {
	router, _ := newTestRouter()

	w, env := doJSON(t, router, http.MethodDelete, "/api/gifts?id=missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestDeleteFromPageKeepsGiftForOtherPage(t *testing.T) {
	router, repo := newTestRouter()

	_, env := doJSON(t, router, http.MethodPost, "/api/gifts", gin.H{
		"title": "Both", "order": 0, "enabled": true,
	})
	var created models.Gift
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env := doJSON(t, router, http.MethodDelete, "/api/gifts?id="+created.ID+"&page=luck", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	gift, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, gift.VisibleInLuckGame())
	assert.True(t, gift.VisibleInSelection())
}
