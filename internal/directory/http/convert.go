package http

import (
	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/aussiebroadwan/hiddengems/pkg/directorysdk"
)

func toAuthResponse(res domain.AuthResult) directorysdk.AuthResponse {
	return directorysdk.AuthResponse{
		Token:    res.Token,
		Type:     "Bearer",
		UserID:   res.UserID.String(),
		Username: res.Username,
		Email:    res.Email,
	}
}

func toBusiness(b domain.BusinessView) directorysdk.Business {
	return directorysdk.Business{
		ID:          b.ID.String(),
		Name:        b.Name,
		Category:    b.Category,
		Address:     b.Address,
		City:        b.City,
		State:       b.State,
		Zip:         b.Zip,
		Phone:       b.Phone,
		Description: b.Description,
		Rating:      b.Rating,
		ReviewCount: b.ReviewCount,
		Favorited:   b.Favorited,
	}
}

func toBusinessPage(p domain.Page[domain.BusinessView]) directorysdk.BusinessPage {
	content := make([]directorysdk.Business, len(p.Content))
	for i, b := range p.Content {
		content[i] = toBusiness(b)
	}
	return directorysdk.BusinessPage{
		Content:       content,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Size:          p.Size,
		Number:        p.Number,
	}
}
