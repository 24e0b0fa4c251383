package impl

import (
	"context"
	"encoding/json"
	"testing"

	"raices/internal/domain/entity"
	domainerrors "raices/internal/domain/errors"
	"raices/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyService_Create_Success(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")

	price := 250000.0
	bedrooms := int64(3)
	elevator := true
	availableFrom := "2026-10-01"
	property, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:          "Penthouse en Naco",
		Slug:          "penthouse-naco",
		Type:          "venta",
		Price:         usecase.LenientFloat{Value: &price},
		Bedrooms:      usecase.LenientInt{Value: &bedrooms},
		Elevator:      usecase.LenientBool{Value: &elevator},
		Status:        "disponible",
		Description:   "Penthouse con terraza privada.",
		Location:      "Naco, Santo Domingo",
		AvailableFrom: &availableFrom,
		ImageURLs:     []string{"https://cdn.example.com/ph/1.jpg", " ", "https://cdn.example.com/ph/2.jpg"},
		SellerID:      seller.ID,
	})

	require.NoError(t, err)
	assert.NotZero(t, property.ID)
	assert.Equal(t, seller.ID, property.SellerID)
	assert.True(t, property.Independent())
	assert.Len(t, property.Images, 2, "blank image URLs are dropped")
	require.NotNil(t, property.AvailableFrom)
	assert.Equal(t, 2026, property.AvailableFrom.Year())
	require.NotNil(t, property.Bedrooms)
	assert.EqualValues(t, 3, *property.Bedrooms)
}

func TestPropertyService_Create_MissingRequiredFields(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")

	price := 100000.0
	_, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:      "Sin slug",
		Price:     usecase.LenientFloat{Value: &price},
		ImageURLs: []string{"https://cdn.example.com/x.jpg"},
		SellerID:  seller.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestPropertyService_Create_RequiresImages(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")

	price := 100000.0
	_, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:        "Casa sin fotos",
		Slug:        "casa-sin-fotos",
		Type:        "venta",
		Price:       usecase.LenientFloat{Value: &price},
		Status:      "disponible",
		Description: "Casa de prueba.",
		Location:    "Santiago",
		ImageURLs:   []string{"   "},
		SellerID:    seller.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrPropertyImagesRequired)
}

func TestPropertyService_Create_InvalidPrice(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")

	zero := 0.0
	for name, price := range map[string]usecase.LenientFloat{
		"precio ausente": {},
		"precio cero":    {Value: &zero},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
				Name:        "Casa",
				Slug:        "casa-precio",
				Type:        "venta",
				Price:       price,
				Status:      "disponible",
				Description: "Casa de prueba.",
				Location:    "Santiago",
				ImageURLs:   []string{"https://cdn.example.com/x.jpg"},
				SellerID:    seller.ID,
			})

			require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestPropertyService_Create_InvalidAvailableFrom(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")

	price := 100000.0
	bad := "el mes que viene"
	_, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:          "Casa",
		Slug:          "casa-fecha",
		Type:          "venta",
		Price:         usecase.LenientFloat{Value: &price},
		Status:        "disponible",
		Description:   "Casa de prueba.",
		Location:      "Santiago",
		AvailableFrom: &bad,
		ImageURLs:     []string{"https://cdn.example.com/x.jpg"},
		SellerID:      seller.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestPropertyService_Create_DuplicateSlug(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	fixtures.seedProperty(t, seller.ID, "apartamento-piantini")

	price := 100000.0
	_, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:        "Otro apartamento",
		Slug:        "apartamento-piantini",
		Type:        "venta",
		Price:       usecase.LenientFloat{Value: &price},
		Status:      "disponible",
		Description: "Otro apartamento.",
		Location:    "Piantini",
		ImageURLs:   []string{"https://cdn.example.com/x.jpg"},
		SellerID:    seller.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrPropertySlugTaken)
}

func TestPropertyService_Create_AttachedToOwnProject(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	project := fixtures.seedProject(t, seller.ID, "torre-alameda")

	price := 100000.0
	property, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:        "Unidad 4B",
		Slug:        "torre-alameda-4b",
		Type:        "venta",
		Price:       usecase.LenientFloat{Value: &price},
		Status:      "disponible",
		Description: "Unidad de dos habitaciones.",
		Location:    "Bella Vista",
		ProjectID:   usecase.LenientInt{Value: &project.ID},
		ImageURLs:   []string{"https://cdn.example.com/4b.jpg"},
		SellerID:    seller.ID,
	})

	require.NoError(t, err)
	require.NotNil(t, property.ProjectID)
	assert.Equal(t, project.ID, *property.ProjectID)
}

func TestPropertyService_GetByID_IncludesSellerAndProjectSummaries(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	project := fixtures.seedProject(t, seller.ID, "torre-alameda")

	price := 100000.0
	created, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:        "Unidad 4B",
		Slug:        "torre-alameda-4b",
		Type:        "venta",
		Price:       usecase.LenientFloat{Value: &price},
		Status:      "disponible",
		Description: "Unidad de dos habitaciones.",
		Location:    "Bella Vista",
		ProjectID:   usecase.LenientInt{Value: &project.ID},
		ImageURLs:   []string{"https://cdn.example.com/4b.jpg"},
		SellerID:    seller.ID,
	})
	require.NoError(t, err)

	// Both the create response and later detail reads carry the seller
	// contact and the project summary, not just the foreign keys.
	for _, property := range []*entity.Property{created, mustGetByID(t, fixtures, created.ID)} {
		require.NotNil(t, property.Seller)
		assert.Equal(t, seller.ID, property.Seller.ID)
		assert.Equal(t, "vendedor@example.com", property.Seller.Email)
		require.NotNil(t, property.Seller.Phone)

		require.NotNil(t, property.Project)
		assert.Equal(t, project.ID, property.Project.ID)
		assert.Equal(t, "torre-alameda", property.Project.Slug)
	}
}

func mustGetByID(t *testing.T, fixtures *serviceFixtures, id int64) *entity.Property {
	t.Helper()

	property, err := fixtures.properties.GetByID(context.Background(), id)
	require.NoError(t, err)

	return property
}

func TestPropertyService_Create_ForeignProjectRejected(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	other := fixtures.seedSeller(t, "otro@example.com")
	project := fixtures.seedProject(t, other.ID, "torre-ajena")

	price := 100000.0
	_, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:        "Unidad intrusa",
		Slug:        "unidad-intrusa",
		Type:        "venta",
		Price:       usecase.LenientFloat{Value: &price},
		Status:      "disponible",
		Description: "No debería crearse.",
		Location:    "Bella Vista",
		ProjectID:   usecase.LenientInt{Value: &project.ID},
		ImageURLs:   []string{"https://cdn.example.com/x.jpg"},
		SellerID:    seller.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrProjectOwnershipViolation)
}

func TestPropertyService_Create_MissingProject(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")

	price := 100000.0
	ghost := int64(424242)
	_, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:        "Unidad fantasma",
		Slug:        "unidad-fantasma",
		Type:        "venta",
		Price:       usecase.LenientFloat{Value: &price},
		Status:      "disponible",
		Description: "No debería crearse.",
		Location:    "Bella Vista",
		ProjectID:   usecase.LenientInt{Value: &ghost},
		ImageURLs:   []string{"https://cdn.example.com/x.jpg"},
		SellerID:    seller.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrProjectNotFound)
}

func TestPropertyService_GetBySlug_NotFound(t *testing.T) {
	fixtures := createTestServices(t)

	_, err := fixtures.properties.GetBySlug(context.Background(), "no-existe")

	require.ErrorIs(t, err, domainerrors.ErrPropertyNotFound)
}

func TestPropertyService_ListIndependent_ExcludesProjectUnits(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	independent := fixtures.seedProperty(t, seller.ID, "casa-independiente")
	project := fixtures.seedProject(t, seller.ID, "torre-alameda")

	price := 100000.0
	_, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:        "Unidad 1A",
		Slug:        "torre-alameda-1a",
		Type:        "venta",
		Price:       usecase.LenientFloat{Value: &price},
		Status:      "disponible",
		Description: "Unidad de proyecto.",
		Location:    "Bella Vista",
		ProjectID:   usecase.LenientInt{Value: &project.ID},
		ImageURLs:   []string{"https://cdn.example.com/1a.jpg"},
		SellerID:    seller.ID,
	})
	require.NoError(t, err)

	listed, err := fixtures.properties.ListIndependent(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, independent.ID, listed[0].ID)
}

func TestPropertyService_ListByProject_OwnerOnly(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	buyer := fixtures.seedBuyer(t, "comprador@example.com")
	project := fixtures.seedProject(t, seller.ID, "torre-alameda")

	_, err := fixtures.properties.ListByProject(context.Background(), seller.ID, project.ID)
	require.NoError(t, err)

	_, err = fixtures.properties.ListByProject(context.Background(), buyer.ID, project.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotOwner)
}

func TestPropertyService_Update_ThreeStateSemantics(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	property := fixtures.seedProperty(t, seller.ID, "apartamento-piantini")

	// Give the listing a bedroom count so the null can clear it.
	bedrooms := int64(2)
	updated, err := fixtures.properties.Update(context.Background(), &usecase.UpdatePropertyInput{
		Bedrooms:   usecase.Set(usecase.LenientInt{Value: &bedrooms}),
		PropertyID: property.ID,
		CallerID:   seller.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Bedrooms)

	price := 199000.0
	updated, err = fixtures.properties.Update(context.Background(), &usecase.UpdatePropertyInput{
		Price:      usecase.Set(usecase.LenientFloat{Value: &price}),
		Bedrooms:   usecase.Null[usecase.LenientInt](),
		PropertyID: property.ID,
		CallerID:   seller.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, 199000.0, updated.Price)
	assert.Nil(t, updated.Bedrooms, "explicit null clears the column")
	assert.Equal(t, property.Name, updated.Name, "absent fields keep their value")
}

func TestPropertyService_Update_DecodedFromJSON(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	property := fixtures.seedProperty(t, seller.ID, "apartamento-piantini")

	var input usecase.UpdatePropertyInput
	payload := `{"precio":"225000","habitaciones":"3.9","ascensor":"1","metros2":null}`
	require.NoError(t, json.Unmarshal([]byte(payload), &input))
	input.PropertyID = property.ID
	input.CallerID = seller.ID

	updated, err := fixtures.properties.Update(context.Background(), &input)

	require.NoError(t, err)
	assert.Equal(t, 225000.0, updated.Price)
	require.NotNil(t, updated.Bedrooms)
	assert.EqualValues(t, 3, *updated.Bedrooms, "fractional strings truncate")
	require.NotNil(t, updated.Elevator)
	assert.True(t, *updated.Elevator)
	assert.Nil(t, updated.Area)
	assert.Equal(t, property.Name, updated.Name)
}

func TestPropertyService_Update_NotOwner(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	other := fixtures.seedSeller(t, "otro@example.com")
	property := fixtures.seedProperty(t, seller.ID, "apartamento-piantini")

	name := "Intento ajeno"
	_, err := fixtures.properties.Update(context.Background(), &usecase.UpdatePropertyInput{
		Name:       usecase.Set(name),
		PropertyID: property.ID,
		CallerID:   other.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrNotOwner)
}

func TestPropertyService_Update_SlugConflict(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	fixtures.seedProperty(t, seller.ID, "apartamento-piantini")
	property := fixtures.seedProperty(t, seller.ID, "apartamento-naco")

	_, err := fixtures.properties.Update(context.Background(), &usecase.UpdatePropertyInput{
		Slug:       usecase.Set("apartamento-piantini"),
		PropertyID: property.ID,
		CallerID:   seller.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrPropertySlugTaken)
}

func TestPropertyService_Update_CannotClearRequiredField(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	property := fixtures.seedProperty(t, seller.ID, "apartamento-piantini")

	_, err := fixtures.properties.Update(context.Background(), &usecase.UpdatePropertyInput{
		Name:       usecase.Null[string](),
		PropertyID: property.ID,
		CallerID:   seller.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestPropertyService_Update_CannotRemoveAllImages(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	property := fixtures.seedProperty(t, seller.ID, "apartamento-piantini")

	_, err := fixtures.properties.Update(context.Background(), &usecase.UpdatePropertyInput{
		ImageURLs:  usecase.Set([]string{}),
		PropertyID: property.ID,
		CallerID:   seller.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrPropertyImagesRequired)
}

func TestPropertyService_Update_DetachFromProject(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	project := fixtures.seedProject(t, seller.ID, "torre-alameda")

	price := 100000.0
	property, err := fixtures.properties.Create(context.Background(), &usecase.CreatePropertyInput{
		Name:        "Unidad 2C",
		Slug:        "torre-alameda-2c",
		Type:        "venta",
		Price:       usecase.LenientFloat{Value: &price},
		Status:      "disponible",
		Description: "Unidad de proyecto.",
		Location:    "Bella Vista",
		ProjectID:   usecase.LenientInt{Value: &project.ID},
		ImageURLs:   []string{"https://cdn.example.com/2c.jpg"},
		SellerID:    seller.ID,
	})
	require.NoError(t, err)

	updated, err := fixtures.properties.Update(context.Background(), &usecase.UpdatePropertyInput{
		ProjectID:  usecase.Null[usecase.LenientInt](),
		PropertyID: property.ID,
		CallerID:   seller.ID,
	})

	require.NoError(t, err)
	assert.True(t, updated.Independent())
}

func TestPropertyService_Delete(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	other := fixtures.seedSeller(t, "otro@example.com")
	property := fixtures.seedProperty(t, seller.ID, "apartamento-piantini")

	err := fixtures.properties.Delete(context.Background(), other.ID, property.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotOwner)

	require.NoError(t, fixtures.properties.Delete(context.Background(), seller.ID, property.ID))

	_, err = fixtures.properties.GetByID(context.Background(), property.ID)
	require.ErrorIs(t, err, domainerrors.ErrPropertyNotFound)
}

func TestPropertyService_AddImages_Appends(t *testing.T) {
	fixtures := createTestServices(t)
	seller := fixtures.seedSeller(t, "vendedor@example.com")
	property := fixtures.seedProperty(t, seller.ID, "apartamento-piantini")

	updated, err := fixtures.properties.AddImages(context.Background(), seller.ID, property.ID, []string{
		"https://cdn.example.com/nueva-1.jpg",
		"https://cdn.example.com/nueva-2.jpg",
	})

	require.NoError(t, err)
	assert.Len(t, updated.Images, 3)
	assert.Equal(t, "https://cdn.example.com/nueva-2.jpg", updated.Images[len(updated.Images)-1].URL)
}
