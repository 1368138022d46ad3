package api

type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	PublishDate string `json:"publishDate"`
	Category    string `json:"category"`
	CreatedAt   string `json:"createdAt"`
}

// PostProto is the body of a create request.
type PostProto struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	PublishDate string `json:"publishDate"`
	Category    string `json:"category"`
}

type PostCard struct {
	Post             Post   `json:"post"`
	CategoryLabel    string `json:"categoryLabel"`
	PublishDateLabel string `json:"publishDateLabel"`
	Snippet          string `json:"snippet"`
	DescriptionHTML  string `json:"descriptionHtml"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

type Dashboard struct {
	Total      int             `json:"total"`
	Categories []CategoryCount `json:"categories"`
	Other      int             `json:"other"`
	Recent     []Post          `json:"recent"`
}

type Error struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
