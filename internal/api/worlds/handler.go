package worlds

import (
	"errors"
	"net/http"
	"strings"

	"storybuilder-app/database"
	"storybuilder-app/internal/domain/writing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errUnknownMember = errors.New("unknown member")

func mustAuthorID(c *gin.Context) (uint, bool) {
	authorID := c.GetUint("author_id")
	if authorID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return authorID, true
}

func cleanGroupInput(c *gin.Context, in *GroupInput) bool {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required", "field": "name"})
		return false
	}
	return true
}

// ownedStories loads the given story IDs, requiring all of them to
// belong to the author.
func ownedStories(tx *gorm.DB, authorID uint, ids []uint) ([]writing.Story, error) {
	var list []writing.Story
	if len(ids) == 0 {
		return list, nil
	}
	err := tx.Where("author_id = ? AND id IN ?", authorID, ids).Find(&list).Error
	if err != nil {
		return nil, err
	}
	if len(list) != len(ids) {
		return nil, errUnknownMember
	}
	return list, nil
}

// ownedCharacters loads character IDs, requiring every one to live in a
// story the author owns.
func ownedCharacters(tx *gorm.DB, authorID uint, ids []uint) ([]writing.Character, error) {
	var list []writing.Character
	if len(ids) == 0 {
		return list, nil
	}
	err := tx.
		Joins("JOIN stories ON stories.id = characters.story_id").
		Where("stories.author_id = ? AND characters.id IN ?", authorID, ids).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	if len(list) != len(ids) {
		return nil, errUnknownMember
	}
	return list, nil
}

// ------------------------------
// worlds
// ------------------------------

func ListWorlds(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	var list []writing.World
	err := database.DB.
		Where("author_id = ?", authorID).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load worlds"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func CreateWorld(c *gin.Context) {
	var in GroupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	if !cleanGroupInput(c, &in) {
		return
	}

	world := writing.World{AuthorID: authorID, Name: in.Name, Description: in.Description}
	if err := database.DB.Create(&world).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create world"})
		return
	}

	c.JSON(http.StatusCreated, world)
}

func GetWorld(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	var world writing.World
	err := database.DB.
		Preload("Stories").
		First(&world, "author_id = ? AND id = ?", authorID, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "World not found"})
		return
	}

	c.JSON(http.StatusOK, world)
}

func UpdateWorld(c *gin.Context) {
	var in GroupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	if !cleanGroupInput(c, &in) {
		return
	}

	var world writing.World
	if err := database.DB.First(&world, "author_id = ? AND id = ?", authorID, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "World not found"})
		return
	}

	world.Name = in.Name
	world.Description = in.Description
	if err := database.DB.Save(&world).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update world"})
		return
	}

	c.JSON(http.StatusOK, world)
}

func DeleteWorld(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	res := database.DB.Delete(&writing.World{}, "author_id = ? AND id = ?", authorID, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete world"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "World not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// PUT /worlds/:id/stories — replaces the world's story set.
func SetWorldStories(c *gin.Context) {
	var in GroupStoriesInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var world writing.World
		if err := tx.First(&world, "author_id = ? AND id = ?", authorID, c.Param("id")).Error; err != nil {
			return err
		}

		list, err := ownedStories(tx, authorID, in.StoryIDs)
		if err != nil {
			return err
		}

		return tx.Model(&world).Association("Stories").Replace(list)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "World not found"})
			return
		}
		if errors.Is(err, errUnknownMember) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown story in selection", "field": "story_ids"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update world stories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// collections
// ------------------------------

func ListCollections(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	var list []writing.Collection
	err := database.DB.
		Where("author_id = ?", authorID).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load collections"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func CreateCollection(c *gin.Context) {
	var in GroupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	if !cleanGroupInput(c, &in) {
		return
	}

	col := writing.Collection{AuthorID: authorID, Name: in.Name, Description: in.Description}
	if err := database.DB.Create(&col).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create collection"})
		return
	}

	c.JSON(http.StatusCreated, col)
}

func GetCollection(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	var col writing.Collection
	err := database.DB.
		Preload("Stories").
		Preload("Characters").
		First(&col, "author_id = ? AND id = ?", authorID, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	c.JSON(http.StatusOK, col)
}

func UpdateCollection(c *gin.Context) {
	var in GroupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}
	if !cleanGroupInput(c, &in) {
		return
	}

	var col writing.Collection
	if err := database.DB.First(&col, "author_id = ? AND id = ?", authorID, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	col.Name = in.Name
	col.Description = in.Description
	if err := database.DB.Save(&col).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update collection"})
		return
	}

	c.JSON(http.StatusOK, col)
}

func DeleteCollection(c *gin.Context) {
	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	res := database.DB.Delete(&writing.Collection{}, "author_id = ? AND id = ?", authorID, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete collection"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// PUT /collections/:id/stories
func SetCollectionStories(c *gin.Context) {
	var in GroupStoriesInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var col writing.Collection
		if err := tx.First(&col, "author_id = ? AND id = ?", authorID, c.Param("id")).Error; err != nil {
			return err
		}

		list, err := ownedStories(tx, authorID, in.StoryIDs)
		if err != nil {
			return err
		}

		return tx.Model(&col).Association("Stories").Replace(list)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
			return
		}
		if errors.Is(err, errUnknownMember) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown story in selection", "field": "story_ids"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update collection stories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PUT /collections/:id/characters
func SetCollectionCharacters(c *gin.Context) {
	var in GroupCharactersInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := mustAuthorID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var col writing.Collection
		if err := tx.First(&col, "author_id = ? AND id = ?", authorID, c.Param("id")).Error; err != nil {
			return err
		}

		list, err := ownedCharacters(tx, authorID, in.CharacterIDs)
		if err != nil {
			return err
		}

		return tx.Model(&col).Association("Characters").Replace(list)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
			return
		}
		if errors.Is(err, errUnknownMember) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown character in selection", "field": "character_ids"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update collection characters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
