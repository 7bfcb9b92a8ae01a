package handlers

import (
	"restaurant-admin/models"
	"restaurant-admin/pkg/resp"
	"restaurant-admin/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo documents the order statuses and the active policy
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	description := "Any status may be set at any time"
	if h.policy == statemachine.Forward {
		description = "Orders only move forward: ordered → in process → delivered"
	}

	next := gin.H{}
	for _, s := range models.OrderStatuses {
		next[string(s)] = h.policy.ValidTransitionsFrom(s)
	}

	resp.OK(c, gin.H{
		"statuses":        models.OrderStatuses,
		"policy":          h.policy,
		"transitions":     statemachine.GetAllTransitions(),
		"validNextStates": next,
		"terminalStates":  []models.OrderStatus{models.StatusDelivered},
		"description":     description,
	})
}
