package dto

type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// UpdateNoteRequest is a partial update: nil fields are left unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type ShareNoteRequest struct {
	UserToShareWith string `json:"user_to_share_with" binding:"required"`
}
