package server

import (
	"zenumljpg/src/services/auth"
	"zenumljpg/src/services/diagram"
)

type ConvertDiagramRequest struct {
	ZenUMLCode string `json:"zenuml_code"`
}

// ConvertDiagramResponse is always 200-shaped; the success flag and the
// error code inside the body tell the two outcomes (and failure stages)
// apart.
type ConvertDiagramResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DiagramData string `json:"diagram_data"`
	DiagramID   string `json:"diagram_id"`
	ErrorCode   string `json:"error_code,omitempty"`
}

type ViewDiagramResponse struct {
	DiagramID  string `json:"diagramId"`
	Title      string `json:"title"`
	CreatedAt  string `json:"createdAt"`
	ImageURL   string `json:"imageURL"`
	ZenUMLCode string `json:"zenUMLCode"`
}

type ExportDiagramJPGResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	DownloadURL string `json:"download_url"`
	FileSize    int    `json:"file_size"`
	ContentType string `json:"content_type"`
}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterUserResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type LoginUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginUserResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

func MapViewToResponse(out diagram.ViewOutput) ViewDiagramResponse {
	return ViewDiagramResponse{
		DiagramID:  out.DiagramID,
		Title:      out.Title,
		CreatedAt:  out.CreatedAt,
		ImageURL:   out.ImageURL,
		ZenUMLCode: out.SourceText,
	}
}

func MapExportToResponse(out diagram.ExportOutput) ExportDiagramJPGResponse {
	return ExportDiagramJPGResponse{
		Status:      out.Status,
		Message:     out.Message,
		DownloadURL: out.DownloadURL,
		FileSize:    out.FileSize,
		ContentType: out.ContentType,
	}
}

func MapRegisterToResponse(out auth.RegisterOutput) RegisterUserResponse {
	return RegisterUserResponse{
		UserID:  out.UserID,
		Message: out.Message,
	}
}

func MapLoginToResponse(out auth.LoginOutput) LoginUserResponse {
	return LoginUserResponse{
		Token:  out.Token,
		UserID: out.UserID,
	}
}
