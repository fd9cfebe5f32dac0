package schemas

type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PlanRequest struct {
	PlanActive *bool `json:"planActive" validate:"required"`
}

type CustomerBulkRequest struct {
	TargetIDs  []string `json:"targetIds" validate:"required"`
	PlanActive *bool    `json:"planActive,omitempty"`
}
