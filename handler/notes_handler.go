package handler

import (
	"errors"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetUserNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	callerID := c.GetString("user_id")

	notes, err := notesService.ListNotes(c, callerID)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, notes)
}

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Title is required")
		return
	}

	callerID := c.GetString("user_id")
	note, err := notesService.CreateNote(c, callerID, req.Title, req.Content)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Created(c, note)
}

func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")
	callerID := c.GetString("user_id")

	note, err := notesService.GetNote(c, callerID, noteID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Success(c, note)
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")
	callerID := c.GetString("user_id")

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	note, err := notesService.UpdateNote(c, callerID, noteID, req.Title, req.Content)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Success(c, note)
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")
	callerID := c.GetString("user_id")

	if err := notesService.DeleteNote(c, callerID, noteID); err != nil {
		respondNoteError(c, err)
		return
	}

	utils.NoContent(c)
}

func ShareNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")
	callerID := c.GetString("user_id")

	var req dto.ShareNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "user_to_share_with is required")
		return
	}

	if err := notesService.ShareNote(c, callerID, noteID, req.UserToShareWith); err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Message(c, "Note shared successfully")
}

// SearchNotesHandler runs the global, cross-user search. See
// NotesService.SearchNotes for the scoping caveat.
func SearchNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	callerID := c.GetString("user_id")
	query := c.Query("q")

	notes, err := notesService.SearchNotes(c, callerID, query)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	utils.Success(c, notes)
}

func respondNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNoteNotFound):
		utils.NotFound(c, "Note not found")
	case errors.Is(err, usecase.ErrUserNotFound):
		utils.NotFound(c, "User not found")
	case errors.Is(err, usecase.ErrQueryRequired):
		utils.BadRequest(c, "Please provide a search query")
	case errors.Is(err, usecase.ErrTitleRequired),
		errors.Is(err, usecase.ErrTitleTooLong),
		errors.Is(err, usecase.ErrContentTooLong):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalError(c, err.Error())
	}
}
