package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authapp "github.com/wyfcoding/khamyang/internal/auth/application"
	authdomain "github.com/wyfcoding/khamyang/internal/auth/domain"
	"github.com/wyfcoding/khamyang/internal/auth/infrastructure/persistence/memory"
	authhttp "github.com/wyfcoding/khamyang/internal/auth/interfaces/http"
	"github.com/wyfcoding/khamyang/internal/dictionary/application"
	"github.com/wyfcoding/khamyang/internal/dictionary/domain"
	"github.com/wyfcoding/khamyang/pkg/upload"
)

type memWordRepo struct {
	words map[string]*domain.Word
}

func (r *memWordRepo) Save(ctx context.Context, word *domain.Word) error {
	w := *word
	r.words[word.ID] = &w
	return nil
}

func (r *memWordRepo) GetByID(ctx context.Context, id string) (*domain.Word, error) {
	if w, ok := r.words[id]; ok {
		out := *w
		return &out, nil
	}
	return nil, nil
}

func (r *memWordRepo) List(ctx context.Context, search, sortBy string) ([]*domain.Word, error) {
	var out []*domain.Word
	for _, w := range r.words {
		if search == "" || strings.Contains(strings.ToLower(w.English), strings.ToLower(search)) {
			copied := *w
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TaiKhamyang < out[j].TaiKhamyang
	})
	return out, nil
}

func (r *memWordRepo) Delete(ctx context.Context, id string) error {
	delete(r.words, id)
	return nil
}

type memSongRepo struct {
	songs map[string]*domain.Song
}

func (r *memSongRepo) Save(ctx context.Context, song *domain.Song) error {
	s := *song
	r.songs[song.ID] = &s
	return nil
}

func (r *memSongRepo) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	if s, ok := r.songs[id]; ok {
		out := *s
		return &out, nil
	}
	return nil, nil
}

func (r *memSongRepo) List(ctx context.Context, search, sortBy string) ([]*domain.Song, error) {
	var out []*domain.Song
	for _, s := range r.songs {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memSongRepo) Delete(ctx context.Context, id string) error {
	delete(r.songs, id)
	return nil
}

type emptyAdminRepo struct {
	admins map[string]*authdomain.Admin
}

func (r *emptyAdminRepo) Save(ctx context.Context, admin *authdomain.Admin) error {
	a := *admin
	r.admins[admin.Username] = &a
	return nil
}

func (r *emptyAdminRepo) GetByUsername(ctx context.Context, username string) (*authdomain.Admin, error) {
	if a, ok := r.admins[username]; ok {
		out := *a
		return &out, nil
	}
	return nil, nil
}

type emptyUserRepo struct{}

func (r *emptyUserRepo) Save(ctx context.Context, user *authdomain.User) error { return nil }
func (r *emptyUserRepo) GetByID(ctx context.Context, id string) (*authdomain.User, error) {
	return nil, nil
}
func (r *emptyUserRepo) GetByPhone(ctx context.Context, phone string) (*authdomain.User, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *http.Cookie, *memWordRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := memory.NewSessionRepository()
	authCommand := authapp.NewAuthCommandService(
		&emptyUserRepo{},
		&emptyAdminRepo{admins: make(map[string]*authdomain.Admin)},
		sessions, nil, nil, time.Hour,
	)
	authQuery := authapp.NewAuthQueryService(&emptyUserRepo{}, sessions)

	words := &memWordRepo{words: make(map[string]*domain.Word)}
	songs := &memSongRepo{songs: make(map[string]*domain.Song)}
	command := application.NewDictionaryCommandService(words, songs, nil, nil)
	query := application.NewDictionaryQueryService(words, songs)

	uploads, err := upload.New(t.TempDir(), 1)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(authhttp.SessionMiddleware(authQuery))
	NewDictionaryHandler(command, query, uploads, nil).RegisterRoutes(engine)

	session, err := authCommand.StartSession(context.Background(), authdomain.RoleAdmin, "admin", "admin")
	require.NoError(t, err)
	adminCookie := &http.Cookie{Name: authhttp.AdminSessionCookie, Value: session.Token}

	return engine, adminCookie, words
}

func TestListWordsBareArray(t *testing.T) {
	engine, _, words := newTestRouter(t)

	require.NoError(t, words.Save(context.Background(), domain.NewWord("nam", "Water", "pani", "")))

	req := httptest.NewRequest(http.MethodGet, "/api/words?search=water", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Water", resp[0]["english"])
}

func TestAddWordRequiresAdminCookie(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	body := `{"tai_khamyang":"nam","english":"water","assamese":"pani"}`
	req := httptest.NewRequest(http.MethodPost, "/api/words", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Unauthorized", resp["error"])
}

func TestAddWordAsAdmin(t *testing.T) {
	engine, adminCookie, words := newTestRouter(t)

	body := `{"tai_khamyang":"nam","english":"water","assamese":"pani"}`
	req := httptest.NewRequest(http.MethodPost, "/api/words", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(adminCookie)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["id"])
	assert.Len(t, words.words, 1)
}

func TestAddWordMissingFields(t *testing.T) {
	engine, adminCookie, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/words", strings.NewReader(`{"english":"water"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(adminCookie)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Missing required fields", resp["error"])
}

func TestAddWordMultipartWithAudio(t *testing.T) {
	engine, adminCookie, words := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("tai_khamyang", "nam"))
	require.NoError(t, mw.WriteField("english", "water"))
	require.NoError(t, mw.WriteField("assamese", "pani"))
	fw, err := mw.CreateFormFile("audio", "nam pronunciation.mp3")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake-audio"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/words", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(adminCookie)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, words.words, 1)
	for _, word := range words.words {
		assert.Equal(t, "nam_pronunciation.mp3", word.AudioPath)
	}
}

func TestUpdateAndDeleteWord(t *testing.T) {
	engine, adminCookie, words := newTestRouter(t)

	word := domain.NewWord("nam", "water", "pani", "keep.mp3")
	require.NoError(t, words.Save(context.Background(), word))

	body := `{"tai_khamyang":"nam","english":"Water","assamese":"pani"}`
	req := httptest.NewRequest(http.MethodPut, "/api/words/"+word.ID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(adminCookie)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Word updated successfully", resp["message"])

	updated := words.words[word.ID]
	assert.Equal(t, "Water", updated.English)
	assert.Equal(t, "keep.mp3", updated.AudioPath)

	req = httptest.NewRequest(http.MethodDelete, "/api/words/"+word.ID, nil)
	req.AddCookie(adminCookie)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Empty(t, words.words)
}

func TestAddSongAsAdmin(t *testing.T) {
	engine, adminCookie, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/songs",
		strings.NewReader(`{"title":"Khe Lang","description":"harvest song"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(adminCookie)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
}
