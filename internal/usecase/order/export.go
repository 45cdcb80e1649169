package usecase

import (
	"context"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

var exportHeader = []string{
	"lead_id", "lead_type", "first_name", "last_name", "email", "phone",
	"country", "availability", "submission_status", "broker_domain",
}

// ExportLeads flattens the order's leads into tabular rows for CSV delivery.
func (uc *DefaultFulfillmentUsecase) ExportLeads(ctx context.Context, orderID string) ([][]string, error) {
	order, err := uc.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	leads, err := uc.LeadRepo.GetByIDs(ctx, order.LeadIDs, nil)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(leads)+1)
	rows = append(rows, exportHeader)
	for _, lead := range leads {
		rows = append(rows, []string{
			lead.ID,
			string(lead.LeadType),
			lead.FirstName,
			lead.LastName,
			lead.Email,
			lead.Phone,
			lead.Country,
			string(lead.Availability),
			submissionStatus(lead, order.ID),
			brokerDomain(lead, order.ID),
		})
	}
	return rows, nil
}

func submissionStatus(lead *domain.Lead, orderID string) string {
	status := ""
	for _, entry := range lead.NetworkLogs {
		if entry.OrderID == orderID {
			status = string(entry.Status)
		}
	}
	return status
}

func brokerDomain(lead *domain.Lead, orderID string) string {
	if entry := lead.BrokerLogFor(orderID); entry != nil {
		return entry.Domain
	}
	return ""
}
