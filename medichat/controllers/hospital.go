package controllers

import (
	"medichat/medichat/services/hospital"
	"medichat/medichat/types"
	"medichat/medichat/utils/logging"

	"go.uber.org/zap"
)

type HospitalController struct {
	gpt *hospital.GPT
}

func NewHospitalController(gpt *hospital.GPT) *HospitalController {
	return &HospitalController{gpt: gpt}
}

// HospitalQuery answers structured hospital questions straight from the data
// file, no model involved.
func (c *HospitalController) HospitalQuery(req types.QueryRequest) (*types.HospitalQueryResponse, error) {
	logging.AppLogger.Info("Processing hospital query", zap.String("query", req.Query))
	data, err := c.gpt.ProcessQuery(req.Query)
	if err != nil {
		return nil, err
	}
	return &types.HospitalQueryResponse{Status: "success", Data: data}, nil
}
