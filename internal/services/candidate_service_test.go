package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"voting-service/internal/events"
	"voting-service/internal/models"
	"voting-service/internal/repositories/gormrepo"
	"voting-service/internal/storage"
	"voting-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tinyPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func fileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func newCandidateService(t *testing.T) (*CandidateService, *storage.LocalStore, *recordingPublisher) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "img"), "/candidates-images")
	require.NoError(t, err)
	pub := &recordingPublisher{}
	ledger := NewVotingLedger(gormrepo.NewVoteRepository(db), nil, nil, 0)
	return NewCandidateService(gormrepo.NewCandidateRepository(db), store, ledger, pub), store, pub
}

func TestCandidateService_CRUD(t *testing.T) {
	svc, _, pub := newCandidateService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, &models.CreateCandidateRequest{Name: "  Sarah Johnson ", Description: "Education advocate"})
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", c.Name)

	_, err = svc.Create(ctx, &models.CreateCandidateRequest{Name: "Sarah Johnson"})
	assert.ErrorIs(t, err, ErrCandidateExists)

	desc := "Community builder"
	updated, err := svc.Update(ctx, c.ID, &models.UpdateCandidateRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", updated.Name)
	assert.Equal(t, desc, updated.Description)

	_, err = svc.Update(ctx, 999, &models.UpdateCandidateRequest{Description: &desc})
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.Delete(ctx, c.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCandidateNotFound)
	_, err = svc.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	require.Len(t, pub.events, 3)
	assert.Equal(t, events.TypeCandidateDeleted, pub.events[2].Type)
}

func TestCandidateService_UploadImage(t *testing.T) {
	svc, store, _ := newCandidateService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, &models.CreateCandidateRequest{Name: "Maria Garcia"})
	require.NoError(t, err)

	withImage, err := svc.UploadImage(ctx, c.ID, fileHeader(t, "maria.png", tinyPNG))
	require.NoError(t, err)
	assert.Contains(t, withImage.Image, "/candidates-images/")
	first := filepath.Join(store.Dir(), filepath.Base(withImage.Image))
	_, err = os.Stat(first)
	require.NoError(t, err)

	replaced, err := svc.UploadImage(ctx, c.ID, fileHeader(t, "maria2.png", tinyPNG))
	require.NoError(t, err)
	assert.NotEqual(t, withImage.Image, replaced.Image)
	_, err = os.Stat(first)
	assert.True(t, os.IsNotExist(err), "previous image removed")

	_, err = svc.UploadImage(ctx, c.ID, fileHeader(t, "evil.png", []byte("<?php echo 1; ?>")))
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = svc.UploadImage(ctx, 999, fileHeader(t, "x.png", tinyPNG))
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}
