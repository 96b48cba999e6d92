// Package handlers exposes the JSON API. Entities leaving through these
// routes cross the network boundary, so local resource references are
// rehomed to absolute URLs rooted at the request host on the way out.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmfalke/tunecast/internal/discovery"
	"github.com/dmfalke/tunecast/internal/domain"
	"github.com/dmfalke/tunecast/internal/logger"
	"github.com/dmfalke/tunecast/internal/search"
	"github.com/dmfalke/tunecast/internal/store"
	"github.com/dmfalke/tunecast/internal/upnp"
)

type Handler struct {
	Index     *search.Index
	Devices   *discovery.Registry
	Tracklist *store.TracklistRepo
	Playlists *store.PlaylistRepo
	Playback  *domain.CurrentPlayback
	UPnP      *upnp.Client
	CoversDir string
	Logger    *logger.Logger
}

func NewHandler(index *search.Index, devices *discovery.Registry, tracklist *store.TracklistRepo, playlists *store.PlaylistRepo, coversDir string, log *logger.Logger) *Handler {
	return &Handler{
		Index:     index,
		Devices:   devices,
		Tracklist: tracklist,
		Playlists: playlists,
		Playback:  domain.NewCurrentPlayback(),
		UPnP:      upnp.NewClient(nil),
		CoversDir: coversDir,
		Logger:    log.WithComponent("api"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/devices", h.ListDevices)
	r.Post("/devices/dlna", h.AddDLNADevice)
	r.Post("/devices/{id}/connect", h.ConnectDevice)
	r.Post("/devices/disconnect", h.DisconnectDevice)

	r.Get("/search", h.Search)
	r.Get("/albums/{id}", h.GetAlbum)
	r.Get("/artists/{id}", h.GetArtist)

	r.Get("/tracks/{id}", h.StreamTrack)
	r.Get("/covers/{name}", h.ServeCover)

	r.Get("/playback", h.GetPlayback)
	r.Put("/playback", h.UpdatePlayback)

	r.Get("/tracklist", h.GetTracklist)
	r.Post("/tracklist", h.AddToTracklist)
	r.Delete("/tracklist/{id}", h.RemoveFromTracklist)
	r.Delete("/tracklist", h.ClearTracklist)

	r.Get("/playlists", h.ListPlaylists)
	r.Post("/playlists", h.CreatePlaylist)
	r.Get("/playlists/{id}", h.GetPlaylist)
	r.Delete("/playlists/{id}", h.DeletePlaylist)
	r.Post("/playlists/{id}/tracks", h.AddPlaylistTrack)
	r.Delete("/playlists/{id}/tracks/{trackID}", h.RemovePlaylistTrack)
	r.Post("/folders", h.CreateFolder)
	r.Get("/folders/{id}", h.GetFolder)
}

// baseURL derives the rehoming root from the incoming request, so served
// references point back at this server however it was reached.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
