package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cookbook-backend/application/ports"
	"cookbook-backend/application/services"
	"cookbook-backend/domain/core/entities"
	"cookbook-backend/interfaces/http/web"
	"cookbook-backend/pkg/auth"
	pkgerrors "cookbook-backend/pkg/errors"
)

// maxUploadBytes caps the multipart form size for recipe images
const maxUploadBytes = 10 << 20

// bulkDeleteConfirmation is the exact button value required to wipe a user's
// recipes. Anything else is treated as an accidental submit.
const bulkDeleteConfirmation = "Delete All My Recipes"

// RecipeHandler handles the recipe lifecycle, comments, the saved-list
// toggle, and the listing pages
type RecipeHandler struct {
	recipes  *services.RecipeService
	comments *services.CommentService
	users    ports.UserRepository
	images   ports.ImageStore
	renderer *web.Renderer
	logger   *zap.Logger
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(
	recipes *services.RecipeService,
	comments *services.CommentService,
	users ports.UserRepository,
	images ports.ImageStore,
	renderer *web.Renderer,
	logger *zap.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:  recipes,
		comments: comments,
		users:    users,
		images:   images,
		renderer: renderer,
		logger:   logger,
	}
}

// recipeDetailView is the payload for the recipe detail page
type recipeDetailView struct {
	Recipe    *entities.Recipe
	OwnerName string
	Saved     bool
	IsOwner   bool
	Comments  []commentView
}

// commentView pairs a comment body with its author's username
type commentView struct {
	Author string
	Body   string
}

// Browse handles GET /browse
func (h *RecipeHandler) Browse(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}

	recipes, err := h.recipes.Browse(r.Context())
	if err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "browse", web.PageData{User: user, Data: recipes})
}

// ShowAdd handles GET /recipe-add
func (h *RecipeHandler) ShowAdd(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}
	h.renderer.Render(w, http.StatusOK, "recipe_add", web.PageData{User: user})
}

// Create handles POST /recipe-add. The image upload is required on creation;
// the stored filename replaces the client's name before the recipe persists.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}

	attrs, err := h.parseRecipeForm(r, true)
	if err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}

	if _, err := h.recipes.Create(r.Context(), user, attrs); err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	http.Redirect(w, r, "/browse", http.StatusFound)
}

// Detail handles GET /recipe/{slug}
func (h *RecipeHandler) Detail(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}

	recipe, err := h.recipes.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}

	view, err := h.buildDetailView(r, user, recipe)
	if err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "recipe_detail", web.PageData{User: user, Data: view})
}

// AddComment handles POST /recipe/{slug}
func (h *RecipeHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, user, pkgerrors.NewValidationError("invalid form submission"))
		return
	}

	slug := chi.URLParam(r, "slug")
	if _, err := h.comments.Add(r.Context(), user, slug, r.FormValue("description")); err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	http.Redirect(w, r, "/recipe/"+slug, http.StatusFound)
}

// ShowEdit handles GET /recipe/{slug}/edit. Non-owners get the forbidden page
// before the form ever renders.
func (h *RecipeHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}

	recipe, err := h.recipes.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	if err := h.recipes.Authorize(user, recipe); err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "recipe_edit", web.PageData{User: user, Data: recipe})
}

// Edit handles POST /recipe/{slug}/edit. The image is optional here: an empty
// upload keeps the existing one.
func (h *RecipeHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}

	attrs, err := h.parseRecipeForm(r, false)
	if err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}

	if err := h.recipes.Edit(r.Context(), user, chi.URLParam(r, "slug"), attrs); err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	http.Redirect(w, r, "/my-recipes", http.StatusFound)
}

// Delete handles GET /recipe/{slug}/delete
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}

	if err := h.recipes.Delete(r.Context(), user, chi.URLParam(r, "slug")); err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	http.Redirect(w, r, "/my-recipes", http.StatusFound)
}

// ToggleSave handles GET /recipe/{slug}/save
func (h *RecipeHandler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}

	slug := chi.URLParam(r, "slug")
	if _, err := h.recipes.ToggleSaved(r.Context(), user, slug); err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	http.Redirect(w, r, "/recipe/"+slug, http.StatusFound)
}

// MyRecipes handles GET /my-recipes
func (h *RecipeHandler) MyRecipes(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}

	recipes, err := h.recipes.ListOwned(r.Context(), user)
	if err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	h.renderer.Render(w, http.StatusOK, "my_recipes", web.PageData{User: user, Data: recipes})
}

// BulkDelete handles POST /my-recipes. The wipe only runs when the submitted
// button value matches the confirmation text exactly.
func (h *RecipeHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, user, pkgerrors.NewValidationError("invalid form submission"))
		return
	}
	if r.FormValue("delete") != bulkDeleteConfirmation {
		http.Redirect(w, r, "/my-recipes", http.StatusFound)
		return
	}

	if err := h.recipes.DeleteAllOwned(r.Context(), user); err != nil {
		h.renderer.RenderError(w, user, err)
		return
	}
	http.Redirect(w, r, "/browse", http.StatusFound)
}

// SavedRecipes handles GET /saved-recipes
func (h *RecipeHandler) SavedRecipes(w http.ResponseWriter, r *http.Request) {
	user := h.mustUser(w, r)
	if user == nil {
		return
	}
	h.renderer.Render(w, http.StatusOK, "saved_recipes", web.PageData{User: user, Data: h.recipes.ListSaved(user)})
}

// mustUser pulls the authenticated user from the context. The router gates
// these routes already, so a miss means a wiring bug; redirecting to /login
// keeps the failure harmless either way.
func (h *RecipeHandler) mustUser(w http.ResponseWriter, r *http.Request) *entities.User {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return nil
	}
	return user
}

// parseRecipeForm reads the multipart recipe form into attributes, storing the
// uploaded image when one is present. imageRequired distinguishes creation
// from edit.
func (h *RecipeHandler) parseRecipeForm(r *http.Request, imageRequired bool) (entities.RecipeAttributes, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return entities.RecipeAttributes{}, pkgerrors.NewValidationError("invalid form submission")
	}

	attrs := entities.RecipeAttributes{
		Title:           r.FormValue("title"),
		DifficultyLevel: r.FormValue("difficultyLevel"),
		Cuisine:         r.FormValue("cuisine"),
		Description:     r.FormValue("description"),
		Ingredients:     r.FormValue("ingredients"),
		Instructions:    r.FormValue("instructions"),
	}

	var err error
	if attrs.EstimatedTime, err = strconv.Atoi(r.FormValue("estimatedTime")); err != nil {
		return entities.RecipeAttributes{}, pkgerrors.NewValidationError("estimated time must be a whole number")
	}
	if attrs.NumServings, err = strconv.Atoi(r.FormValue("numServings")); err != nil {
		return entities.RecipeAttributes{}, pkgerrors.NewValidationError("servings must be a whole number")
	}
	if attrs.EstimatedCost, err = strconv.ParseFloat(r.FormValue("estimatedCost"), 64); err != nil {
		return entities.RecipeAttributes{}, pkgerrors.NewValidationError("estimated cost must be a number")
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if imageRequired {
			return entities.RecipeAttributes{}, pkgerrors.NewValidationError("an image is required")
		}
		return attrs, nil
	}
	defer file.Close()

	stored, err := h.images.Store(r.Context(), header.Filename, file)
	if err != nil {
		return entities.RecipeAttributes{}, err
	}
	attrs.Image = stored
	return attrs, nil
}

// buildDetailView assembles the detail page payload, resolving the owner's
// and each commenter's username. A deleted commenter renders as "unknown".
func (h *RecipeHandler) buildDetailView(r *http.Request, user *entities.User, recipe *entities.Recipe) (*recipeDetailView, error) {
	owner, err := h.users.GetByID(r.Context(), recipe.Owner())
	ownerName := "unknown"
	if err == nil {
		ownerName = owner.Username()
	} else if !pkgerrors.IsNotFound(err) {
		return nil, err
	}

	comments, err := h.comments.ListForRecipe(r.Context(), recipe)
	if err != nil {
		return nil, err
	}

	views := make([]commentView, 0, len(comments))
	names := map[string]string{recipe.Owner().String(): ownerName}
	for _, comment := range comments {
		name, ok := names[comment.Author().String()]
		if !ok {
			name = "unknown"
			if author, err := h.users.GetByID(r.Context(), comment.Author()); err == nil {
				name = author.Username()
			} else if !pkgerrors.IsNotFound(err) {
				return nil, err
			}
			names[comment.Author().String()] = name
		}
		views = append(views, commentView{Author: name, Body: comment.Body()})
	}

	return &recipeDetailView{
		Recipe:    recipe,
		OwnerName: ownerName,
		Saved:     user.HasSaved(recipe.ID()),
		IsOwner:   recipe.IsOwnedBy(user.ID()),
		Comments:  views,
	}, nil
}
