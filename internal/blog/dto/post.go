package dto

type CreatePostRequest struct {
	Title           string   `json:"title" binding:"required,max=200"`
	Content         string   `json:"content" binding:"required"`
	Excerpt         string   `json:"excerpt" binding:"max=500"`
	FeaturedImage   string   `json:"featured_image" binding:"omitempty,url"`
	MetaTitle       string   `json:"meta_title" binding:"max=200"`
	MetaDescription string   `json:"meta_description" binding:"max=500"`
	MetaKeywords    []string `json:"meta_keywords"`
	Tags            []string `json:"tags"`
}

type UpdatePostStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=published draft"`
}

// ImageUploadResponse carries the public URL of an uploaded blog image.
type ImageUploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
