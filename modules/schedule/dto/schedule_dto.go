package dto

import (
	"time"

	"plansync/modules/schedule/entity"
)

type FreeSlotsRequest struct {
	Date            string `query:"date" validate:"required"`
	MinimumDuration int    `query:"min_duration"`
}

type FreeSlotResponse struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
}

type FreeSlotsResponse struct {
	Date  string             `json:"date"`
	Slots []FreeSlotResponse `json:"slots"`
}

func ToFreeSlotsResponse(date string, slots []entity.FreeSlot) *FreeSlotsResponse {
	resp := &FreeSlotsResponse{
		Date:  date,
		Slots: make([]FreeSlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, FreeSlotResponse{
			Start:           s.Start,
			End:             s.End,
			DurationMinutes: s.DurationMinutes,
		})
	}
	return resp
}
