package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchenharmony-backend-go/internal/core"
)

// Services bundles the core services the route table dispatches to.
type Services struct {
	MealPlans     core.MealPlanService
	Users         core.UserService
	Recipes       core.RecipeService
	Inventories   core.InventoryService
	ShoppingLists core.ShoppingListService
}

// SetupRoutes configures all the application routes with their handlers.
// Global middleware (logging, recovery, CORS) is expected to be applied to router already.
// authenticate resolves the caller identity for every /api/v1 route.
func SetupRoutes(router *gin.Engine, authenticate gin.HandlerFunc, logger *zap.Logger, services Services) {
	mealPlanHandler := NewMealPlanHandler(services.MealPlans, logger)
	userHandler := NewUserHandler(services.Users, logger)
	recipeHandler := NewRecipeHandler(services.Recipes, logger)
	inventoryHandler := NewInventoryHandler(services.Inventories, logger)
	shoppingListHandler := NewShoppingListHandler(services.ShoppingLists, logger)

	apiV1 := router.Group("/api/v1", authenticate)
	{
		mealPlans := apiV1.Group("/mealplan")
		{
			mealPlans.GET("", mealPlanHandler.GetMyMealPlan)
			mealPlans.POST("", mealPlanHandler.SaveMealPlan)
			mealPlans.GET("/user/:userId", mealPlanHandler.GetUserMealPlan)
			mealPlans.GET("/:id", mealPlanHandler.GetMealPlan)
			mealPlans.PUT("/:id", mealPlanHandler.UpdateMealPlan)
			mealPlans.DELETE("/:id", mealPlanHandler.DeleteMealPlan)
			mealPlans.POST("/:id/add-recipe", mealPlanHandler.AddRecipe)
		}

		users := apiV1.Group("/users")
		{
			users.GET("/profile", userHandler.GetProfile)
			users.POST("", userHandler.CreateUser)
			users.GET("/auth0/:auth0Id", userHandler.GetUserByAuth0ID)
			users.GET("/email/:email", userHandler.GetUserByEmail)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		recipes := apiV1.Group("/recipe")
		{
			recipes.GET("", recipeHandler.ListPublicRecipes)
			recipes.GET("/user/:userId", recipeHandler.ListUserRecipes)
			recipes.POST("/user/:userId", recipeHandler.CreateRecipe)
			recipes.GET("/:id", recipeHandler.GetRecipe)
			recipes.PUT("/:id", recipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", recipeHandler.DeleteRecipe)
		}

		inventories := apiV1.Group("/inventory")
		{
			inventories.GET("", inventoryHandler.ListInventories)
			inventories.POST("", inventoryHandler.CreateInventory)
			inventories.GET("/:inventoryId", inventoryHandler.GetInventory)
			inventories.PUT("/:inventoryId", inventoryHandler.UpdateInventory)
			inventories.DELETE("/:inventoryId", inventoryHandler.DeleteInventory)
		}

		shoppingLists := apiV1.Group("/shoppingLists")
		{
			shoppingLists.GET("", shoppingListHandler.ListShoppingLists)
			shoppingLists.POST("", shoppingListHandler.CreateShoppingList)
			shoppingLists.GET("/:shoppingListId", shoppingListHandler.GetShoppingList)
			shoppingLists.PUT("/:shoppingListId", shoppingListHandler.UpdateShoppingList)
			shoppingLists.DELETE("/:shoppingListId", shoppingListHandler.DeleteShoppingList)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Kitchen Harmony backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
