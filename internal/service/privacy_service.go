package service

import (
	"MatchServer/consts"
	"MatchServer/internal/dto"
	"MatchServer/internal/repository"
	"MatchServer/model"
	"context"
	"errors"
)

// privacyServiceImpl 隐私设置服务实现
type privacyServiceImpl struct {
	profileRepo repository.IProfileRepository
}

// NewPrivacyService 创建隐私设置服务实例
func NewPrivacyService(profileRepo repository.IProfileRepository) IPrivacyService {
	return &privacyServiceImpl{profileRepo: profileRepo}
}

// Get 查询隐私设置
// 没有记录不是错误：返回默认值（可见、非隐身）
func (s *privacyServiceImpl) Get(ctx context.Context, userUUID string) (*dto.PrivacySettingsView, error) {
	settings, err := s.profileRepo.GetSettings(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return &dto.PrivacySettingsView{ProfileVisible: true}, nil
		}
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	return toSettingsView(settings), nil
}

// Update 局部更新隐私设置
// 读改写合并：nil 字段维持原值，无记录时在默认值基础上套用更新
func (s *privacyServiceImpl) Update(ctx context.Context, userUUID string, req *dto.UpdatePrivacyRequest) (*dto.PrivacySettingsView, error) {
	settings, err := s.profileRepo.GetSettings(ctx, userUUID)
	if err != nil {
		if !errors.Is(err, repository.ErrRecordNotFound) {
			return nil, consts.WrapBizError(consts.CodeInternalError, err)
		}
		settings = &model.PrivacySettings{UserUuid: userUUID, ProfileVisible: true}
	}

	if req.Incognito != nil {
		settings.Incognito = *req.Incognito
	}
	if req.HideDistance != nil {
		settings.HideDistance = *req.HideDistance
	}
	if req.ProfileVisible != nil {
		settings.ProfileVisible = *req.ProfileVisible
	}
	if req.VerifiedOnly != nil {
		settings.VerifiedOnly = *req.VerifiedOnly
	}

	if err := s.profileRepo.SaveSettings(ctx, settings); err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	return toSettingsView(settings), nil
}

func toSettingsView(settings *model.PrivacySettings) *dto.PrivacySettingsView {
	return &dto.PrivacySettingsView{
		Incognito:      settings.Incognito,
		HideDistance:   settings.HideDistance,
		ProfileVisible: settings.ProfileVisible,
		VerifiedOnly:   settings.VerifiedOnly,
	}
}
