package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/measure"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
)

// 错误定义
var (
	ErrMissingIdentity  = errors.New("fl_id and pan_id are required")
	ErrFloorIDImmutable = errors.New("fl_id cannot be changed after creation")
	ErrBadPhotoData     = errors.New("photo base64 decode failed")
)

// PanelService 面板质检记录的组装、清洗与持久化
type PanelService struct {
	repo *repository.PanelRepository
}

func NewPanelService(repo *repository.PanelRepository) *PanelService {
	return &PanelService{repo: repo}
}

// PhotoInput 照片输入：base64数据（容忍data-URI前缀）+ 类型标签。
// 类型标签缺省时由原始文件名去掉扩展名得出。
type PhotoInput struct {
	Photo     string `json:"photo"`
	PhotoType string `json:"photo_type"`
	FileName  string `json:"file_name"`
}

// CavityValueInput 腔体属性取值输入
type CavityValueInput struct {
	AttributeID uint    `json:"attribute_id"`
	Value       *string `json:"value"`
}

// PanelPayload 部分更新语义的面板写入载荷：未出现的字段保持不变。
// 37个测量字段在线上格式里平铺在顶层，反序列化时收入 Measurements；
// 显式的 null 表示清空该测量字段。
type PanelPayload struct {
	FlID  *string `json:"fl_id"`
	PanID *string `json:"pan_id"`

	IPACleaned         *bool `json:"ipa_cleaned"`
	SealantFrameEnough *bool `json:"sealant_frame_enough"`

	CavitiesInvert           *int    `json:"cavities_invert"`
	QCInfillAffix            *string `json:"qc_infill_affix"`
	StructuralSealantRecords *string `json:"structural_sealant_records"`
	LMR                      *string `json:"lmr"`

	EdgeBeadAttached *bool   `json:"edge_bead_attached"`
	Operable         *bool   `json:"operable"`
	CardChecked      *string `json:"card_checked"`
	PaintDamage      *string `json:"paint_damage"`
	GlassScratched   *string `json:"glass_scratched"`
	CleanedReady     *string `json:"cleaned_ready"`
	Crated           *bool   `json:"crated"`

	// 出现即生效：空串表示清除档案照片
	ProfilePhoto *string `json:"profile_photo"`

	Measurements entity.MeasurementSet `json:"-"`

	FrameCavityValues []CavityValueInput `json:"frame_cavities_values"`
	AdditionalPhotos  []PhotoInput       `json:"additional_photos"`
	NewPhotos         []PhotoInput       `json:"new_photos"`
	DeletePhotos      []uint             `json:"delete_photos"`
}

func (p *PanelPayload) UnmarshalJSON(data []byte) error {
	type plain PanelPayload
	var tmp plain
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for name, rm := range raw {
		field, ok := entity.KnownField(name)
		if !ok {
			continue
		}
		if name != string(field) {
			// 旧别名与规范名同时出现时以规范名为准
			if _, dup := raw[string(field)]; dup {
				continue
			}
		}
		if tmp.Measurements == nil {
			tmp.Measurements = entity.MeasurementSet{}
		}
		if string(rm) == "null" {
			tmp.Measurements[field] = nil
			continue
		}
		var m entity.Measurement
		if err := json.Unmarshal(rm, &m); err != nil {
			return fmt.Errorf("measurement field %s: %w", name, err)
		}
		tmp.Measurements[field] = &m
	}

	*p = PanelPayload(tmp)
	return nil
}

// Create 组装、清洗并持久化新面板，返回保存结果与比对提示
func (s *PanelService) Create(ctx context.Context, userID uint, payload *PanelPayload) (*entity.Panel, []string, error) {
	if payload.FlID == nil || *payload.FlID == "" || payload.PanID == nil || *payload.PanID == "" {
		return nil, nil, ErrMissingIdentity
	}

	panel := &entity.Panel{
		FlID:  *payload.FlID,
		PanID: *payload.PanID,
	}
	panel.ComputePanName()
	applyScalars(panel, payload)

	panel.Measurements = measure.Sanitize(payload.Measurements)

	if payload.ProfilePhoto != nil && *payload.ProfilePhoto != "" {
		photo, err := entity.DecodeBase64Image(*payload.ProfilePhoto)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: profile photo: %v", ErrBadPhotoData, err)
		}
		panel.ProfilePhoto = photo
	}

	if userID != 0 {
		panel.CreatedBy = &userID
	}

	photos, err := decodePhotos(payload.AdditionalPhotos)
	if err != nil {
		return nil, nil, err
	}
	panel.Photos = photos

	for _, cv := range payload.FrameCavityValues {
		panel.FrameCavityValues = append(panel.FrameCavityValues, entity.FrameCavityValue{
			AttributeID: cv.AttributeID,
			Value:       cv.Value,
		})
	}

	if err := s.repo.Create(ctx, panel); err != nil {
		return nil, nil, fmt.Errorf("create panel: %w", err)
	}

	return panel, measure.Advisories(panel.Measurements), nil
}

// Update 合并部分更新并在单个事务中持久化。fl_id 不可变；
// pan_id 变化时重算 pan_name；照片删除先于新增。
func (s *PanelService) Update(ctx context.Context, id, userID uint, payload *PanelPayload) (*entity.Panel, []string, error) {
	panel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if payload.FlID != nil && *payload.FlID != panel.FlID {
		return nil, nil, ErrFloorIDImmutable
	}
	if payload.PanID != nil && *payload.PanID != "" {
		panel.PanID = *payload.PanID
		panel.ComputePanName()
	}
	applyScalars(panel, payload)

	if len(payload.Measurements) > 0 {
		if panel.Measurements == nil {
			panel.Measurements = entity.MeasurementSet{}
		}
		for field, m := range payload.Measurements {
			if m == nil {
				delete(panel.Measurements, field)
				continue
			}
			panel.Measurements[field] = m
		}
	}
	panel.Measurements = measure.Sanitize(panel.Measurements)

	if payload.ProfilePhoto != nil {
		if *payload.ProfilePhoto == "" {
			panel.ProfilePhoto = nil
		} else {
			photo, err := entity.DecodeBase64Image(*payload.ProfilePhoto)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: profile photo: %v", ErrBadPhotoData, err)
			}
			panel.ProfilePhoto = photo
		}
	}

	if userID != 0 {
		panel.UpdatedBy = &userID
	}

	newPhotos, err := decodePhotos(payload.NewPhotos)
	if err != nil {
		return nil, nil, err
	}

	cavityValues := make([]entity.FrameCavityValue, 0, len(payload.FrameCavityValues))
	for _, cv := range payload.FrameCavityValues {
		cavityValues = append(cavityValues, entity.FrameCavityValue{
			AttributeID: cv.AttributeID,
			Value:       cv.Value,
		})
	}

	if err := s.repo.Update(ctx, panel, payload.DeletePhotos, newPhotos, cavityValues); err != nil {
		return nil, nil, fmt.Errorf("update panel: %w", err)
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, measure.Advisories(updated.Measurements), nil
}

// Get 查询面板详情
func (s *PanelService) Get(ctx context.Context, id uint) (*entity.Panel, error) {
	return s.repo.FindByID(ctx, id)
}

// List 面板列表，可按 fl_id 子串过滤
func (s *PanelService) List(ctx context.Context, flFilter string) ([]entity.Panel, error) {
	return s.repo.List(ctx, flFilter)
}

// ListByFloor 某楼层的面板，按创建时间排序
func (s *PanelService) ListByFloor(ctx context.Context, flID string) ([]entity.Panel, error) {
	return s.repo.ListByFloor(ctx, flID)
}

// Delete 删除面板并级联删除子记录
func (s *PanelService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func applyScalars(panel *entity.Panel, payload *PanelPayload) {
	if payload.IPACleaned != nil {
		panel.IPACleaned = *payload.IPACleaned
	}
	if payload.SealantFrameEnough != nil {
		panel.SealantFrameEnough = *payload.SealantFrameEnough
	}
	if payload.CavitiesInvert != nil {
		panel.CavitiesInvert = payload.CavitiesInvert
	}
	if payload.QCInfillAffix != nil {
		panel.QCInfillAffix = payload.QCInfillAffix
	}
	if payload.StructuralSealantRecords != nil {
		panel.StructuralSealantRecords = payload.StructuralSealantRecords
	}
	if payload.LMR != nil {
		panel.LMR = payload.LMR
	}
	if payload.EdgeBeadAttached != nil {
		panel.EdgeBeadAttached = *payload.EdgeBeadAttached
	}
	if payload.Operable != nil {
		panel.Operable = *payload.Operable
	}
	if payload.CardChecked != nil {
		panel.CardChecked = payload.CardChecked
	}
	if payload.PaintDamage != nil {
		panel.PaintDamage = payload.PaintDamage
	}
	if payload.GlassScratched != nil {
		panel.GlassScratched = payload.GlassScratched
	}
	if payload.CleanedReady != nil {
		panel.CleanedReady = payload.CleanedReady
	}
	if payload.Crated != nil {
		panel.Crated = *payload.Crated
	}
}

func decodePhotos(inputs []PhotoInput) ([]entity.PanelPhoto, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	photos := make([]entity.PanelPhoto, 0, len(inputs))
	for i, in := range inputs {
		data, err := entity.DecodeBase64Image(in.Photo)
		if err != nil {
			return nil, fmt.Errorf("%w: photo %d: %v", ErrBadPhotoData, i, err)
		}
		photoType := in.PhotoType
		if photoType == "" && in.FileName != "" {
			photoType = typeLabelFromFileName(in.FileName)
		}
		photo := entity.PanelPhoto{Photo: data}
		if photoType != "" {
			photo.PhotoType = &photoType
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

// typeLabelFromFileName 原始文件名去掉扩展名作为照片类型标签
func typeLabelFromFileName(name string) string {
	base := path.Base(name)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
