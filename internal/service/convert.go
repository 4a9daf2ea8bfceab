package service

import (
	"github.com/mmynk/moneymate/internal/calculator"
	"github.com/mmynk/moneymate/internal/editor"
	"github.com/mmynk/moneymate/internal/models"
	"github.com/mmynk/moneymate/pkg/api"
)

func itemsFromAPI(in []api.Item) []models.Item {
	items := make([]models.Item, len(in))
	for i, item := range in {
		items[i] = models.Item{
			ID:         item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
			AssignedTo: append([]string{}, item.AssignedTo...),
		}
	}
	return items
}

func itemToAPI(item models.Item) api.Item {
	assigned := item.AssignedTo
	if assigned == nil {
		assigned = []string{}
	}
	return api.Item{
		ID:         item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   item.Quantity,
		AssignedTo: assigned,
	}
}

func itemsToAPI(items []models.Item) []api.Item {
	out := make([]api.Item, len(items))
	for i, item := range items {
		out[i] = itemToAPI(item)
	}
	return out
}

func participantToAPI(p models.Participant) api.Participant {
	return api.Participant{ID: p.ID, Name: p.Name}
}

// displayItems assigns tax and tip to everyone once items are final. The
// stored rows are left untouched.
func displayItems(session *models.Session) []models.Item {
	if session.Stage != models.StageSplit {
		return session.Items
	}
	return calculator.Normalize(session.Items, session.Participants)
}

func sessionToAPI(session *models.Session) *api.Session {
	participants := make([]api.Participant, len(session.Participants))
	for i, p := range session.Participants {
		participants[i] = participantToAPI(p)
	}

	subtotal := editor.Subtotal(editor.StripSynthetic(session.Items))
	return &api.Session{
		ID:           session.ID,
		Title:        session.Title,
		Stage:        string(session.Stage),
		Items:        itemsToAPI(displayItems(session)),
		Participants: participants,
		Tax:          session.Tax,
		Tip:          session.Tip,
		Subtotal:     subtotal,
		Total:        subtotal + session.Tax + session.Tip,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}
}

func summaryToAPI(summary calculator.Summary) *api.Summary {
	perPerson := make([]api.PersonSummary, len(summary.PerPerson))
	for i, person := range summary.PerPerson {
		items := make([]api.PersonItem, len(person.Items))
		for j, item := range person.Items {
			items[j] = api.PersonItem{
				ID:       item.ID,
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
				Share:    item.Share,
			}
		}
		perPerson[i] = api.PersonSummary{
			ParticipantID: person.ParticipantID,
			Name:          person.Name,
			Total:         person.Total,
			Items:         items,
		}
	}
	return &api.Summary{Total: summary.Total, PerPerson: perPerson}
}

func userToAPI(user *models.User) *api.User {
	return &api.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}
