package branch

type CreateCountryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Code string `json:"code" binding:"required,len=2|len=3"`
}

type CreateBranchRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Address   string `json:"address" binding:"max=500"`
	City      string `json:"city" binding:"max=100"`
	CountryID string `json:"country_id" binding:"required,uuid"`
}

type UpdateBranchRequest struct {
	Name     string `json:"name" binding:"omitempty,max=100"`
	Address  string `json:"address" binding:"max=500"`
	City     string `json:"city" binding:"max=100"`
	IsActive *bool  `json:"is_active"`
}

type CountryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type BranchResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	CountryID   string `json:"country_id"`
	CountryName string `json:"country_name,omitempty"`
	IsActive    bool   `json:"is_active"`
}
