package model

// Respuesta de error del backend.
type Resp struct {
	Message string `json:"message"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterCredentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse es el usuario más el token de sesión.
type AuthResponse struct {
	User
	Token string `json:"token"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type PasswordRequest struct {
	Password string `json:"password"`
}

type InviteResponse struct {
	Message string `json:"message,omitempty"`
	Link    string `json:"link"`
}

type RoleChange struct {
	Role Role `json:"role"`
}

type ModuleInput struct {
	Title string `json:"title"`
}

type LessonInput struct {
	Title       string `json:"title"`
	VideoURL    string `json:"videoUrl"`
	Description string `json:"description"`
}

type ResourceInput struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type CommentInput struct {
	Text string `json:"text"`
}

type NewConversation struct {
	ReceiverID string `json:"receiverId"`
}

type MessageInput struct {
	ConversationID string `json:"conversationId"`
	Text           string `json:"text"`
	ClientID       string `json:"clientId,omitempty"`
}

type CheckoutRequest struct {
	PriceID string `json:"priceId"`
	Email   string `json:"email,omitempty"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// Upload es un fichero leído del disco para mandarlo en un multipart.
type Upload struct {
	Name string
	Data []byte
}

type PostDraft struct {
	Content string
	Image   *Upload
}

type CourseDraft struct {
	Title       string
	Description string
	Thumbnail   *Upload
}

type ProfileDraft struct {
	Username string
	Bio      string
	Image    *Upload
}

type AccountSetup struct {
	Username string
	Password string
	Image    *Upload
}
