package api

// Item is a receipt line. Price is per unit.
type Item struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	Quantity   int      `json:"quantity,omitempty"`
	AssignedTo []string `json:"assignedTo"`
}

type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PersonItem is one item's contribution to a person's total.
type PersonItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Share    float64 `json:"share"`
}

type PersonSummary struct {
	ParticipantID string       `json:"participantId"`
	Name          string       `json:"name"`
	Total         float64      `json:"total"`
	Items         []PersonItem `json:"items"`
}

type Summary struct {
	Total     float64         `json:"total"`
	PerPerson []PersonSummary `json:"perPerson"`
}

// Stage values of Session.Stage.
const (
	StageReview = "review"
	StageSplit  = "split"
)

type Session struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Stage        string        `json:"stage"`
	Items        []Item        `json:"items"`
	Participants []Participant `json:"participants"`
	Tax          float64       `json:"tax"`
	Tip          float64       `json:"tip"`
	Subtotal     float64       `json:"subtotal"`
	Total        float64       `json:"total"`
	CreatedAt    int64         `json:"createdAt"`
	UpdatedAt    int64         `json:"updatedAt"`
}

// SessionResponse is returned by every procedure that reads or changes a
// session. Summary is set once the items are finalized.
type SessionResponse struct {
	Session *Session `json:"session"`
	Summary *Summary `json:"summary,omitempty"`
}

type CreateSessionRequest struct {
	Title string `json:"title,omitempty"`
	Items []Item `json:"items,omitempty"`
}

type GetSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type DeleteSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type DeleteSessionResponse struct{}

type ListSessionsRequest struct{}

type ListSessionsResponse struct {
	Sessions []*Session `json:"sessions"`
}

type AddItemRequest struct {
	SessionID string `json:"sessionId"`
}

type AddItemResponse struct {
	Session *Session `json:"session"`
	Item    *Item    `json:"item"`
}

// UpdateItemRequest changes the fields that are set.
type UpdateItemRequest struct {
	SessionID string   `json:"sessionId"`
	ItemID    string   `json:"itemId"`
	Name      *string  `json:"name,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Quantity  *int     `json:"quantity,omitempty"`
}

type DeleteItemRequest struct {
	SessionID string `json:"sessionId"`
	ItemID    string `json:"itemId"`
}

type FinalizeItemsRequest struct {
	SessionID string  `json:"sessionId"`
	Tax       float64 `json:"tax"`
	Tip       float64 `json:"tip"`
}

type ReopenItemsRequest struct {
	SessionID string `json:"sessionId"`
}

type AddParticipantRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

// AddParticipantResponse reports Added false, and no participant, for a blank name.
type AddParticipantResponse struct {
	Session     *Session     `json:"session"`
	Summary     *Summary     `json:"summary,omitempty"`
	Participant *Participant `json:"participant,omitempty"`
	Added       bool         `json:"added"`
}

type RemoveParticipantRequest struct {
	SessionID     string `json:"sessionId"`
	ParticipantID string `json:"participantId"`
}

type ToggleAssignmentRequest struct {
	SessionID     string `json:"sessionId"`
	ItemID        string `json:"itemId"`
	ParticipantID string `json:"participantId"`
}

type SplitEvenlyRequest struct {
	SessionID string `json:"sessionId"`
}

type GetSummaryRequest struct {
	SessionID string `json:"sessionId"`
}

// GetSummaryResponse carries the summary and its shareable text form.
type GetSummaryResponse struct {
	Summary *Summary `json:"summary"`
	Text    string   `json:"text"`
}

// AnalyzeReceiptRequest carries a data URL or bare base64 image.
type AnalyzeReceiptRequest struct {
	Image string `json:"image"`
}

type AnalyzeReceiptResponse struct {
	Items []Item `json:"items"`
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// SessionScoped is implemented by requests that address a single session.
type SessionScoped interface {
	GetSessionID() string
}

func (r *GetSessionRequest) GetSessionID() string        { return r.SessionID }
func (r *DeleteSessionRequest) GetSessionID() string     { return r.SessionID }
func (r *AddItemRequest) GetSessionID() string           { return r.SessionID }
func (r *UpdateItemRequest) GetSessionID() string        { return r.SessionID }
func (r *DeleteItemRequest) GetSessionID() string        { return r.SessionID }
func (r *FinalizeItemsRequest) GetSessionID() string     { return r.SessionID }
func (r *ReopenItemsRequest) GetSessionID() string       { return r.SessionID }
func (r *AddParticipantRequest) GetSessionID() string    { return r.SessionID }
func (r *RemoveParticipantRequest) GetSessionID() string { return r.SessionID }
func (r *ToggleAssignmentRequest) GetSessionID() string  { return r.SessionID }
func (r *SplitEvenlyRequest) GetSessionID() string       { return r.SessionID }
func (r *GetSummaryRequest) GetSessionID() string        { return r.SessionID }
