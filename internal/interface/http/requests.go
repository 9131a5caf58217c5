package handlers

import "github.com/oksasatya/marketplace-storefront/internal/domain/entity"

type addressRequest struct {
	AddressLine1 string `json:"addressLine1" binding:"required,max=200"`
	AddressLine2 string `json:"addressLine2" binding:"max=200"`
	Landmark     string `json:"landmark" binding:"max=200"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"required,max=100"`
	PinCode      string `json:"pinCode" binding:"required,pincode"`
	Country      string `json:"country" binding:"max=100"`
	Phone        string `json:"phone" binding:"required,phone"`
}

func (r *addressRequest) toEntity() *entity.Address {
	if r == nil {
		return nil
	}
	return &entity.Address{
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		Landmark:     r.Landmark,
		City:         r.City,
		State:        r.State,
		PinCode:      r.PinCode,
		Country:      r.Country,
		Phone:        r.Phone,
	}
}

type registerRequest struct {
	Name         string          `json:"name" binding:"required,min=2,max=100"`
	Email        string          `json:"email" binding:"required,email,max=254"`
	Password     string          `json:"password" binding:"required,pwd"`
	ProfileImage string          `json:"profileImage"`
	Address      *addressRequest `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,bcryptlen"`
}

// Pointer fields distinguish "absent" from "set to empty".
type updateProfileRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=100"`
	ProfileImage    *string `json:"profileImage"`
	CurrentPassword string  `json:"currentPassword" binding:"bcryptlen"`
	NewPassword     string  `json:"newPassword" binding:"omitempty,pwd"`
}

type settingsRequest struct {
	CurrentPassword string  `json:"currentPassword" binding:"bcryptlen"`
	NewPassword     string  `json:"newPassword" binding:"omitempty,pwd"`
	ProfileImage    *string `json:"profileImage"`
}

type upsertAddressRequest struct {
	Address *addressRequest `json:"address" binding:"required"`
}

type directoryQuery struct {
	Q    string `form:"q" binding:"max=100"`
	Role string `form:"role" binding:"omitempty,oneof=customer seller reseller admin"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}
