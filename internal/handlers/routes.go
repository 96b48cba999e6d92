package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmfalke/tunecast/internal/domain"
	"github.com/dmfalke/tunecast/internal/search"
)

func (h *Handler) ListDevices(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.Devices.List())
}

func (h *Handler) ConnectDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	device, ok := h.Devices.Connect(id)
	if !ok {
		h.respondError(w, http.StatusNotFound, "unknown device")
		return
	}
	h.Logger.Info("Connected to device", "device_id", device.ID, "app", device.App)
	h.respondJSON(w, http.StatusOK, device)
}

type dlnaRequest struct {
	Location string `json:"location"`
}

// AddDLNADevice registers a device found at a UPnP description URL. SSDP
// announcement handling lives with the client; the server only needs the
// resolved location.
func (h *Handler) AddDLNADevice(w http.ResponseWriter, r *http.Request) {
	var req dlnaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Location == "" {
		h.respondError(w, http.StatusBadRequest, "location is required")
		return
	}

	device, err := h.UPnP.FetchDevice(r.Context(), req.Location)
	if err != nil {
		h.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	if device.ID == "" {
		h.respondError(w, http.StatusBadGateway, "descriptor carries no UDN")
		return
	}

	h.Devices.Upsert(device)
	h.Logger.Info("Registered DLNA device", "device_id", device.ID, "name", device.Name)
	h.respondJSON(w, http.StatusCreated, device)
}

func (h *Handler) DisconnectDevice(w http.ResponseWriter, r *http.Request) {
	h.Devices.Disconnect()
	w.WriteHeader(http.StatusNoContent)
}

type searchResponse struct {
	Albums  []domain.Album  `json:"albums"`
	Artists []domain.Artist `json:"artists"`
	Tracks  []domain.Track  `json:"tracks"`
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.respondJSON(w, http.StatusOK, searchResponse{})
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	results, err := h.Index.Search(r.Context(), query, limit)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	base := baseURL(r)
	resp := searchResponse{}
	for _, album := range results.Albums {
		resp.Albums = append(resp.Albums, album.WithRemoteCoverURL(base))
	}
	for _, artist := range results.Artists {
		resp.Artists = append(resp.Artists, artist.WithRemoteCoverURL(base))
	}
	for _, song := range results.Songs {
		track := song.ToTrack().WithRemoteTrackURL(base).WithRemoteCoverURL(base)
		resp.Tracks = append(resp.Tracks, track)
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	album, err := h.Index.GetAlbum(r.Context(), id)
	if err != nil {
		h.respondNotFoundOrError(w, err)
		return
	}

	songs, err := h.Index.AlbumSongs(r.Context(), id)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, song := range songs {
		album.Tracks = append(album.Tracks, song.ToTrack())
	}

	base := baseURL(r)
	h.respondJSON(w, http.StatusOK, album.WithRemoteCoverURL(base).WithRemoteTrackURL(base))
}

func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	artist, err := h.Index.GetArtist(r.Context(), id)
	if err != nil {
		h.respondNotFoundOrError(w, err)
		return
	}

	songs, err := h.Index.ArtistSongs(r.Context(), id)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, song := range songs {
		artist.Songs = append(artist.Songs, song.ToTrack())
	}

	base := baseURL(r)
	h.respondJSON(w, http.StatusOK, artist.WithRemoteCoverURL(base).WithRemoteTrackURL(base))
}

func (h *Handler) StreamTrack(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	path, err := h.Index.TrackPath(r.Context(), id)
	if err != nil {
		h.respondNotFoundOrError(w, err)
		return
	}
	http.ServeFile(w, r, path)
}

func (h *Handler) ServeCover(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "name"))
	http.ServeFile(w, r, filepath.Join(h.CoversDir, name))
}

// GetPlayback assembles a playback snapshot: the queued tracks as ordered
// items plus whatever state the player last reported.
func (h *Handler) GetPlayback(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Tracklist.List()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	base := baseURL(r)
	playback := domain.Playback{Items: make([]domain.PlaybackItem, 0, len(ids))}
	for i, id := range ids {
		track := domain.Track{ID: id}
		if song, err := h.Index.GetSong(r.Context(), id); err == nil {
			track = song.ToTrack().WithRemoteTrackURL(base).WithRemoteCoverURL(base)
		}
		playback.Items = append(playback.Items, domain.PlaybackItem{Track: track, ID: i + 1})
	}

	if state, ok := h.Playback.Get(); ok {
		playback.Index = state.Index
		playback.PositionMS = state.PositionMS
		playback.IsPlaying = state.IsPlaying
	}
	if playback.Index >= 0 && playback.Index < len(playback.Items) {
		item := playback.Items[playback.Index]
		playback.CurrentTrack = &item.Track
		playback.CurrentItemID = item.ID
	}
	h.respondJSON(w, http.StatusOK, playback)
}

type playbackRequest struct {
	Index      int  `json:"index"`
	PositionMS int  `json:"position_ms"`
	IsPlaying  bool `json:"is_playing"`
}

// UpdatePlayback records the player-reported state served back by
// GetPlayback.
func (h *Handler) UpdatePlayback(w http.ResponseWriter, r *http.Request) {
	var req playbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid playback state")
		return
	}
	if req.Index < 0 || req.PositionMS < 0 {
		h.respondError(w, http.StatusBadRequest, "index and position_ms must not be negative")
		return
	}
	h.Playback.Set(domain.Playback{
		Index:      req.Index,
		PositionMS: req.PositionMS,
		IsPlaying:  req.IsPlaying,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetTracklist(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Tracklist.List()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	base := baseURL(r)
	tracks := make([]domain.Track, 0, len(ids))
	for _, id := range ids {
		song, err := h.Index.GetSong(r.Context(), id)
		if err != nil {
			if errors.Is(err, search.ErrNotFound) {
				// The file disappeared from the library; keep the queue
				// entry addressable by id.
				tracks = append(tracks, domain.Track{ID: id})
				continue
			}
			h.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		tracks = append(tracks, song.ToTrack().WithRemoteTrackURL(base).WithRemoteCoverURL(base))
	}
	h.respondJSON(w, http.StatusOK, tracks)
}

type tracklistRequest struct {
	TrackID string `json:"track_id"`
}

func (h *Handler) AddToTracklist(w http.ResponseWriter, r *http.Request) {
	var req tracklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrackID == "" {
		h.respondError(w, http.StatusBadRequest, "track_id is required")
		return
	}
	if err := h.Tracklist.Add(req.TrackID); err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) RemoveFromTracklist(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracklist.Remove(chi.URLParam(r, "id")); err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearTracklist(w http.ResponseWriter, r *http.Request) {
	if err := h.Tracklist.Clear(); err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.Playlists.List()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, playlists)
}

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	playlist, err := h.Playlists.Create(req.Name, req.Description)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, playlist)
}

func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, err := h.Playlists.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusNotFound, "unknown playlist")
		return
	}

	// Stored playlists only keep track ids; resolve them against the
	// index before serving.
	for i, track := range playlist.Tracks {
		song, err := h.Index.GetSong(r.Context(), track.ID)
		if err != nil {
			continue
		}
		playlist.Tracks[i] = song.ToTrack()
	}

	base := baseURL(r)
	h.respondJSON(w, http.StatusOK, playlist.WithRemoteTrackURL(base).WithRemoteCoverURL(base))
}

func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := h.Playlists.Delete(chi.URLParam(r, "id")); err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddPlaylistTrack(w http.ResponseWriter, r *http.Request) {
	var req tracklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrackID == "" {
		h.respondError(w, http.StatusBadRequest, "track_id is required")
		return
	}
	if err := h.Playlists.AddTrack(chi.URLParam(r, "id"), req.TrackID); err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) RemovePlaylistTrack(w http.ResponseWriter, r *http.Request) {
	if err := h.Playlists.RemoveTrack(chi.URLParam(r, "id"), chi.URLParam(r, "trackID")); err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type folderRequest struct {
	Name string `json:"name"`
}

func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	folder, err := h.Playlists.CreateFolder(req.Name)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, folder)
}

func (h *Handler) GetFolder(w http.ResponseWriter, r *http.Request) {
	folder, err := h.Playlists.GetFolder(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusNotFound, "unknown folder")
		return
	}
	h.respondJSON(w, http.StatusOK, folder)
}

func (h *Handler) respondNotFoundOrError(w http.ResponseWriter, err error) {
	if errors.Is(err, search.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	h.respondError(w, http.StatusInternalServerError, err.Error())
}
