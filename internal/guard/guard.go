package guard

import (
	"MatchServer/consts"
	"MatchServer/internal/repository"
	"context"
	"errors"
)

// 拒绝原因，随 403 响应体原样返回给客户端
const (
	ReasonBlocked    = "blocked"
	ReasonIncognito  = "incognito"
	ReasonPeerHidden = "peer_hidden"
)

// Options 控制本次校验启用哪些谓词
// 不同入口的差异只在开关，不在谓词本身：
//   - 喜欢/发消息：全开
//   - 标记已读/输入中：不检查对方可见性（已匹配关系内的动作）
type Options struct {
	// CheckSenderIncognito 是否检查发起方隐身（隐身用户不能主动发起互动）
	CheckSenderIncognito bool

	// CheckPeerVisibility 是否检查对方资料可见性/隐身
	CheckPeerVisibility bool

	// ActorModerator 运营审核身份，跳过全部隐私谓词（拉黑检查除外的只读旁路）
	ActorModerator bool
}

// Outcome 校验结果
// Allowed=false 时 Reason 携带机器可读原因
type Outcome struct {
	Allowed bool
	Reason  string
	Code    int32
}

// Err 将拒绝结果转换为业务错误，允许时返回 nil
func (o Outcome) Err() error {
	if o.Allowed {
		return nil
	}
	return consts.NewBizError(o.Code)
}

var allowed = Outcome{Allowed: true}

func denied(reason string, code int32) Outcome {
	return Outcome{Allowed: false, Reason: reason, Code: code}
}

// Guard 互动隐私门禁
// 无状态纯谓词组合，只读仓储，不产生任何写入
type Guard struct {
	blockRepo   repository.IBlockRepository
	profileRepo repository.IProfileRepository
}

// New 创建门禁实例
func New(blockRepo repository.IBlockRepository, profileRepo repository.IProfileRepository) *Guard {
	return &Guard{blockRepo: blockRepo, profileRepo: profileRepo}
}

// Blocked 两个用户之间任一方向存在拉黑
func (g *Guard) Blocked(ctx context.Context, aUUID, bUUID string) (bool, error) {
	return g.blockRepo.ExistsBetween(ctx, aUUID, bUUID)
}

// Incognito 用户是否处于隐身模式
// 没有隐私设置记录按默认值处理（非隐身）
func (g *Guard) Incognito(ctx context.Context, userUUID string) (bool, error) {
	settings, err := g.profileRepo.GetSettings(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return settings.Incognito, nil
}

// PeerHidden 对方是否对外不可见（资料隐藏或隐身）
func (g *Guard) PeerHidden(ctx context.Context, userUUID string) (bool, error) {
	settings, err := g.profileRepo.GetSettings(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return !settings.ProfileVisible || settings.Incognito, nil
}

// AssertInteractionAllowed 互动准入总开关
// 谓词按代价从低到高短路执行，任何状态写入都必须发生在它之后。
// 第二个返回值仅表示基础设施错误（查库失败），业务拒绝通过 Outcome 表达
func (g *Guard) AssertInteractionAllowed(ctx context.Context, meUUID, peerUUID string, opts Options) (Outcome, error) {
	blocked, err := g.Blocked(ctx, meUUID, peerUUID)
	if err != nil {
		return Outcome{}, err
	}
	if blocked {
		return denied(ReasonBlocked, consts.CodeBlocked), nil
	}

	// 运营旁路：拉黑状态已查过，剩余隐私谓词全部跳过
	if opts.ActorModerator {
		return allowed, nil
	}

	if opts.CheckSenderIncognito {
		incognito, err := g.Incognito(ctx, meUUID)
		if err != nil {
			return Outcome{}, err
		}
		if incognito {
			return denied(ReasonIncognito, consts.CodeIncognito), nil
		}
	}

	if opts.CheckPeerVisibility {
		hidden, err := g.PeerHidden(ctx, peerUUID)
		if err != nil {
			return Outcome{}, err
		}
		if hidden {
			return denied(ReasonPeerHidden, consts.CodePeerHidden), nil
		}
	}

	return allowed, nil
}
