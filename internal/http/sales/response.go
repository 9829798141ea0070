package sales

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/vendas/internal/sale"
)

type importResponse struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"fileName"`
	RecordCount int       `json:"recordCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toResponse(imp *sale.Import) importResponse {
	return importResponse{
		ID:          imp.ID,
		FileName:    imp.FileName,
		RecordCount: imp.RecordCount,
		CreatedAt:   imp.CreatedAt,
	}
}

func toResponseList(imports []*sale.Import) []importResponse {
	resp := make([]importResponse, len(imports))
	for i, imp := range imports {
		resp[i] = toResponse(imp)
	}

	return resp
}
