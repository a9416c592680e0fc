package service

import "math/rand"

// BuildAssignment 计算场景到图片池槽位的分配表
//
// 先对 [0, poolSize) 做一次洗牌得到排列 perm，
// 场景 i 分配到 perm[i mod poolSize]，保证：
//  1. 请求数以 poolSize 为上限，与场景数无关
//  2. 池内每个槽位都会被至少一个场景引用（场景数 >= 池大小时）
//  3. 固定 rng 种子时结果确定，可直接断言
func BuildAssignment(sceneCount, poolSize int, rng *rand.Rand) []int {
	if sceneCount <= 0 || poolSize <= 0 {
		return nil
	}

	perm := rng.Perm(poolSize)

	assignment := make([]int, sceneCount)
	for i := range assignment {
		assignment[i] = perm[i%poolSize]
	}
	return assignment
}
