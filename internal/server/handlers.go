package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gauthierbraillon/ytf/internal/aggregator"
	"github.com/gauthierbraillon/ytf/internal/entry"
	"github.com/gauthierbraillon/ytf/internal/service"
	"github.com/gauthierbraillon/ytf/internal/video"
)

const maxBodyBytes = 64 << 10

// launchForm is the pre-populated form for a bookmarklet launch.
type launchForm struct {
	video.Launch
	Preview *service.Preview `json:"preview,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	at, err := optionalSeconds(r.URL.Query().Get("t"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	preview, err := service.PreviewVideo(r.URL.Query().Get("url"), at)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Stats())
}

func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	form := launchForm{Launch: video.LaunchFromQuery(r.URL.Query())}
	if form.VideoURL == "" {
		writeJSON(w, http.StatusOK, form)
		return
	}

	var at *int
	if form.OffsetSeconds > 0 {
		at = &form.OffsetSeconds
	}
	preview, err := service.PreviewVideo(form.VideoURL, at)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	form.Preview = &preview
	writeJSON(w, http.StatusOK, form)
}

func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	opts, err := feedOptions(r.URL.Query())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Feedback(opts))
}

func (s *Server) handleCreateFeedback(w http.ResponseWriter, r *http.Request) {
	var in service.FeedbackInput
	if !decodeBody(w, r, &in) {
		return
	}
	created, err := s.svc.SubmitFeedback(in)
	s.writeCreated(w, created, err)
}

func (s *Server) handleGetFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	f, found := s.svc.FindFeedback(id)
	if !found {
		writeError(w, http.StatusNotFound, "feedback not found")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleDeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	found, err := s.svc.RemoveFeedback(id)
	s.writeRemoved(w, "feedback", found, err)
}

func (s *Server) handleListWatchLater(w http.ResponseWriter, r *http.Request) {
	opts, err := feedOptions(r.URL.Query())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.WatchLater(opts))
}

func (s *Server) handleCreateWatchLater(w http.ResponseWriter, r *http.Request) {
	var in service.WatchLaterInput
	if !decodeBody(w, r, &in) {
		return
	}
	created, err := s.svc.SaveForLater(in)
	s.writeCreated(w, created, err)
}

func (s *Server) handleGetWatchLater(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, found := s.svc.FindWatchLater(id)
	if !found {
		writeError(w, http.StatusNotFound, "watch later item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteWatchLater(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	found, err := s.svc.RemoveWatchLater(id)
	s.writeRemoved(w, "watch later item", found, err)
}

func (s *Server) writeRemoved(w http.ResponseWriter, what string, found bool, err error) {
	switch {
	case err != nil:
		s.logger.Error("removal not saved", "error", err)
		writeError(w, http.StatusInternalServerError, "removal could not be saved")
	case !found:
		writeError(w, http.StatusNotFound, what+" not found")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// feedOptions reads the emoji, platform, limit and order query parameters.
func feedOptions(q url.Values) (aggregator.FeedOptions, error) {
	var opts aggregator.FeedOptions

	if raw := q.Get("emoji"); raw != "" {
		e, err := entry.ParseEmoji(raw)
		if err != nil {
			return opts, err
		}
		opts.Emoji = e
	}

	platforms, err := video.ParsePlatforms(q.Get("platform"))
	if err != nil {
		return opts, &entry.ValidationError{Field: "platform", Message: err.Error()}
	}
	opts.Platforms = platforms

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, &entry.ValidationError{Field: "limit", Message: fmt.Sprintf("invalid limit %q", raw)}
		}
		opts.Limit = n
	}

	opts.NewestFirst = q.Get("order") == "newest"
	return opts, nil
}

func optionalSeconds(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, errors.New("t must be a non-negative number of seconds")
	}
	return &n, nil
}
