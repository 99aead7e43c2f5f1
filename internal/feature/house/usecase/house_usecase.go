package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/shared/pagination"
)

// NewestLimit はトップページに表示する新着民宿の件数です。
const NewestLimit = 10

// HouseInput は民宿の登録・編集フォームの入力値です。
type HouseInput struct {
	Name        string
	Description string
	Price       int
	Capacity    int
	PostalCode  string
	Address     string
	PhoneNumber string
}

// ImageUpload はアップロードされた画像ファイルです。
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

type houseUsecase struct {
	repo      HouseRepository
	images    ImageStorage
	imageName func(original string) string
}

// NewHouseUsecase はhouseUsecaseの新しいインスタンスを生成します。
func NewHouseUsecase(repo HouseRepository, images ImageStorage) *houseUsecase {
	return &houseUsecase{repo: repo, images: images, imageName: GenerateImageName}
}

// Newest はトップページ用の新着民宿を返します。
func (u *houseUsecase) Newest(ctx context.Context) ([]entity.House, error) {
	return u.repo.FindNewest(ctx, NewestLimit)
}

// Search は一般向けの民宿一覧を返します。
func (u *houseUsecase) Search(ctx context.Context, c SearchCriteria, p pagination.Pageable) (pagination.Page[entity.House], error) {
	if c.Order != OrderPriceAsc {
		c.Order = OrderCreatedAtDesc
	}
	p = p.Normalize()
	houses, total, err := u.repo.Search(ctx, c, p)
	if err != nil {
		return pagination.Page[entity.House]{}, err
	}
	return pagination.NewPage(houses, p, total), nil
}

// AdminSearch は管理画面の民宿一覧を返します。
func (u *houseUsecase) AdminSearch(ctx context.Context, keyword string, p pagination.Pageable) (pagination.Page[entity.House], error) {
	p = p.Normalize()
	houses, total, err := u.repo.SearchByName(ctx, keyword, p)
	if err != nil {
		return pagination.Page[entity.House]{}, err
	}
	return pagination.NewPage(houses, p, total), nil
}

// Get は民宿を取得します。存在しない場合は ErrHouseNotFound を返します。
func (u *houseUsecase) Get(ctx context.Context, id uint) (*entity.House, error) {
	return u.repo.FindByID(ctx, id)
}

// Create は民宿を登録します。画像が指定された場合は生成したファイル名で保存してから登録します。
func (u *houseUsecase) Create(ctx context.Context, in HouseInput, image *ImageUpload) (*entity.House, error) {
	h := &entity.House{}
	apply(h, in)

	stored, err := u.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if stored != "" {
		h.ImageName = stored
	}

	if err := u.repo.Create(ctx, h); err != nil {
		u.removeImage(ctx, stored)
		return nil, err
	}
	slog.Info("house created", "house_id", h.ID, "image", h.ImageName)
	return h, nil
}

// Update は民宿を更新します。画像が指定されない場合は既存の画像をそのまま使います。
func (u *houseUsecase) Update(ctx context.Context, id uint, in HouseInput, image *ImageUpload) (*entity.House, error) {
	h, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := h.ImageName
	apply(h, in)

	stored, err := u.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if stored != "" {
		h.ImageName = stored
	}

	if err := u.repo.Update(ctx, h); err != nil {
		u.removeImage(ctx, stored)
		return nil, err
	}
	if stored != "" && previous != stored {
		u.removeImage(ctx, previous)
	}
	slog.Info("house updated", "house_id", h.ID)
	return h, nil
}

// Delete は民宿を削除します。予約が存在する民宿は ErrHouseInUse になります。
func (u *houseUsecase) Delete(ctx context.Context, id uint) error {
	h, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.removeImage(ctx, h.ImageName)
	slog.Info("house deleted", "house_id", id)
	return nil
}

func (u *houseUsecase) storeImage(ctx context.Context, image *ImageUpload) (string, error) {
	if image == nil || image.Body == nil {
		return "", nil
	}
	name := u.imageName(image.Filename)
	if err := u.images.Save(ctx, name, image.Body); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

// removeImage はベストエフォートで画像を削除します。失敗しても呼び出し元の処理は成功扱いです。
func (u *houseUsecase) removeImage(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := u.images.Delete(ctx, name); err != nil {
		slog.Warn("failed to remove house image", "image", name, "error", err)
	}
}

func apply(h *entity.House, in HouseInput) {
	h.Name = in.Name
	h.Description = in.Description
	h.Price = in.Price
	h.Capacity = in.Capacity
	h.PostalCode = in.PostalCode
	h.Address = in.Address
	h.PhoneNumber = in.PhoneNumber
}
