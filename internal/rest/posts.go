package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/dfryer1193/postboard/api"
	"github.com/dfryer1193/postboard/blog/application"
	"github.com/dfryer1193/postboard/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (a *Api) GetPosts(c *gin.Context) {
	c.JSON(http.StatusOK, toAPIPosts(a.posts.Posts()))
}

func (a *Api) GetPost(c *gin.Context) {
	postID := c.Param("postId")

	post, ok := a.posts.Get(postID)
	if !ok {
		c.JSON(http.StatusNotFound, api.Error{Error: "post not found"})
		return
	}

	c.JSON(http.StatusOK, toAPIPost(post))
}

func (a *Api) CreatePost(c *gin.Context) {
	proto := &api.PostProto{}
	if err := c.ShouldBindJSON(proto); err != nil {
		c.JSON(http.StatusBadRequest, api.Error{Error: err.Error()})
		return
	}

	post, err := a.posts.Create(c.Request.Context(), domain.Draft{
		Title:       proto.Title,
		Description: proto.Description,
		ImageURL:    proto.ImageURL,
		PublishDate: proto.PublishDate,
		Category:    proto.Category,
	})

	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, api.Error{Error: vErr.Err.Error(), Field: vErr.Field})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error{Error: "failed to save post"})
		return
	}

	c.JSON(http.StatusCreated, toAPIPost(post))
}

func (a *Api) DeletePost(c *gin.Context) {
	postID := c.Param("postId")

	if err := a.posts.Delete(c.Request.Context(), postID); err != nil {
		c.JSON(http.StatusInternalServerError, api.Error{Error: "failed to delete post"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (a *Api) GetCards(c *gin.Context) {
	cards, err := application.RenderAll(a.cards, a.posts.Posts())
	if err != nil {
		log.Error().Err(err).Msg("Failed to render post cards")
		c.JSON(http.StatusInternalServerError, api.Error{Error: "failed to render posts"})
		return
	}

	out := make([]api.PostCard, 0, len(cards))
	for _, card := range cards {
		out = append(out, api.PostCard{
			Post:             toAPIPost(card.Post),
			CategoryLabel:    card.CategoryLabel,
			PublishDateLabel: card.PublishDateLabel,
			Snippet:          card.Snippet,
			DescriptionHTML:  string(card.DescriptionHTML),
		})
	}

	c.JSON(http.StatusOK, out)
}

func (a *Api) GetDashboard(c *gin.Context) {
	d := a.posts.Dashboard()

	categories := make([]api.CategoryCount, 0, len(d.Categories))
	for _, cc := range d.Categories {
		categories = append(categories, api.CategoryCount{
			Category: string(cc.Category),
			Label:    cc.Category.Label(),
			Count:    cc.Count,
		})
	}

	c.JSON(http.StatusOK, api.Dashboard{
		Total:      d.Total,
		Categories: categories,
		Other:      d.Other,
		Recent:     toAPIPosts(d.Recent),
	})
}

func toAPIPost(p domain.Post) api.Post {
	return api.Post{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		PublishDate: p.PublishDate,
		Category:    string(p.Category),
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toAPIPosts(posts []domain.Post) []api.Post {
	out := make([]api.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, toAPIPost(p))
	}
	return out
}
