package service

import (
	"MatchServer/consts"
	"MatchServer/internal/dto"
	"MatchServer/internal/guard"
	"MatchServer/internal/repository"
	"MatchServer/model"
	"context"
	"errors"
)

// blockServiceImpl 拉黑服务实现
type blockServiceImpl struct {
	userRepo         repository.IUserRepository
	blockRepo        repository.IBlockRepository
	interactionGuard *guard.Guard
}

// NewBlockService 创建拉黑服务实例
func NewBlockService(userRepo repository.IUserRepository, blockRepo repository.IBlockRepository, interactionGuard *guard.Guard) IBlockService {
	return &blockServiceImpl{userRepo: userRepo, blockRepo: blockRepo, interactionGuard: interactionGuard}
}

// Block 创建拉黑边
// 用户自己拉黑不走隐私门禁：被对方拉黑/对方隐身都不妨碍我拉黑对方。
// 运营通过 OnBehalfOf 代他人拉黑时走门禁的运营旁路：
// 隐私谓词全部跳过，只保留拉黑状态检查（任一方向已有边就无需再建）
func (s *blockServiceImpl) Block(ctx context.Context, actorUUID string, actorModerator bool, req *dto.BlockRequest) error {
	blockerUUID := actorUUID
	source := model.BlockSourceUser
	if req.OnBehalfOf != "" && req.OnBehalfOf != actorUUID {
		if !actorModerator {
			// 代他人拉黑是运营专属能力
			return consts.NewBizError(consts.CodePermissionDeny)
		}
		blockerUUID = req.OnBehalfOf
		source = model.BlockSourceModerator
	}

	if blockerUUID == req.TargetUuid {
		return consts.NewBizError(consts.CodeParamError)
	}

	if _, err := s.userRepo.GetByUUID(ctx, req.TargetUuid); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return consts.WrapBizError(consts.CodeUserNotFound, err)
		}
		return consts.WrapBizError(consts.CodeInternalError, err)
	}

	if source == model.BlockSourceModerator {
		if _, err := s.userRepo.GetByUUID(ctx, blockerUUID); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return consts.WrapBizError(consts.CodeUserNotFound, err)
			}
			return consts.WrapBizError(consts.CodeInternalError, err)
		}

		outcome, err := s.interactionGuard.AssertInteractionAllowed(ctx, blockerUUID, req.TargetUuid, guard.Options{ActorModerator: true})
		if err != nil {
			return consts.WrapBizError(consts.CodeInternalError, err)
		}
		if !outcome.Allowed {
			return consts.NewBizError(consts.CodeBlockAlreadyExists)
		}
	}

	if err := s.blockRepo.Create(ctx, blockerUUID, req.TargetUuid, source); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return consts.WrapBizError(consts.CodeBlockAlreadyExists, err)
		}
		return consts.WrapBizError(consts.CodeInternalError, err)
	}
	return nil
}

// reportServiceImpl 举报服务实现
type reportServiceImpl struct {
	userRepo   repository.IUserRepository
	reportRepo repository.IReportRepository
}

// NewReportService 创建举报服务实例
func NewReportService(userRepo repository.IUserRepository, reportRepo repository.IReportRepository) IReportService {
	return &reportServiceImpl{userRepo: userRepo, reportRepo: reportRepo}
}

// Report 提交举报
func (s *reportServiceImpl) Report(ctx context.Context, reporterUUID string, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	if reporterUUID == req.TargetUuid {
		return nil, consts.NewBizError(consts.CodeParamError)
	}

	if _, err := s.userRepo.GetByUUID(ctx, req.TargetUuid); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, consts.WrapBizError(consts.CodeUserNotFound, err)
		}
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}

	report := &model.UserReport{
		ReporterUuid: reporterUUID,
		TargetUuid:   req.TargetUuid,
		Reason:       req.Reason,
		Detail:       req.Detail,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, consts.WrapBizError(consts.CodeReportPending, err)
		}
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	return &dto.ReportResponse{ReportId: report.Id}, nil
}
