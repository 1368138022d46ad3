package rest

import (
	"net/http"

	"github.com/dfryer1193/postboard/blog/application"
	"github.com/gin-gonic/gin"
)

// Api serves the post collection over HTTP.
type Api struct {
	posts *application.PostService
	cards application.CardRenderer
}

func NewApi(router *gin.Engine, posts *application.PostService, cards application.CardRenderer) *Api {
	a := &Api{
		posts: posts,
		cards: cards,
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	postsV1 := router.Group("posts/v1")
	{
		postsV1.GET("/", a.GetPosts)
		postsV1.POST("/", a.CreatePost)
		postsV1.GET("/:postId", a.GetPost)
		postsV1.DELETE("/:postId", a.DeletePost)
	}

	cardsV1 := router.Group("cards/v1")
	{
		cardsV1.GET("/", a.GetCards)
	}

	dashboardV1 := router.Group("dashboard/v1")
	{
		dashboardV1.GET("/", a.GetDashboard)
	}

	return a
}
