/*
Package handler provides the HTTP handlers and routing setup for the chat hub.

This file contains the read-only diagnostic API over the hub's live state:
room member counts, per-room member lists, and the online-user snapshot.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"chathub/internal/pkg/errs"
	"chathub/internal/pkg/resp"
)

// HandleListRooms returns the member count per active room.
func HandleListRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"rooms": deps.Hub.RoomCounts(),
		}
		resp.RespondSuccess(w, r, data)
	}
}

// HandleRoomMembers returns the member snapshots for one room.
func HandleRoomMembers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room := chi.URLParam(r, "room")
		if room == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		members, ok := deps.Hub.MembersOf(room)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
			return
		}

		data := map[string]any{
			"room":    room,
			"members": members,
		}
		resp.RespondSuccess(w, r, data)
	}
}

// HandleListUsers returns the current online-user snapshot.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"users": deps.Hub.Users(),
		}
		resp.RespondSuccess(w, r, data)
	}
}
