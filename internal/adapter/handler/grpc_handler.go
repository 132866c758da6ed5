package handler

import (
	"context"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
)

const CartServiceName = "rocketshoes.cart.v1.CartService"

// CartServiceServer is the gRPC surface of the cart. Messages are protobuf
// well-known types; mutations answer with the shopper notification, empty
// on success.
type CartServiceServer interface {
	GetCart(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	AddProduct(context.Context, *wrapperspb.Int64Value) (*wrapperspb.StringValue, error)
	RemoveProduct(context.Context, *wrapperspb.Int64Value) (*wrapperspb.StringValue, error)
	// UpdateProductAmount takes {"productId": N, "amount": M}.
	UpdateProductAmount(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
}

var CartServiceDesc = grpc.ServiceDesc{
	ServiceName: CartServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCart", Handler: unaryHandler("GetCart", CartServiceServer.GetCart)},
		{MethodName: "AddProduct", Handler: unaryHandler("AddProduct", CartServiceServer.AddProduct)},
		{MethodName: "RemoveProduct", Handler: unaryHandler("RemoveProduct", CartServiceServer.RemoveProduct)},
		{MethodName: "UpdateProductAmount", Handler: unaryHandler("UpdateProductAmount", CartServiceServer.UpdateProductAmount)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rocketshoes/cart/v1/cart.proto",
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&CartServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](method string, call func(CartServiceServer, context.Context, *Req) (Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + CartServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CartServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CartServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type GRPCHandler struct {
	cartService *service.CartService
}

func NewGRPCHandler(cartService *service.CartService) *GRPCHandler {
	return &GRPCHandler{cartService: cartService}
}

func (h *GRPCHandler) GetCart(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	items := h.cartService.Cart().Items()
	values := make([]*structpb.Value, 0, len(items))
	for _, item := range items {
		s, err := structpb.NewStruct(lineItemFields(item))
		if err != nil {
			return nil, status.Errorf(codes.Internal, "encode line %d: %v", item.ID, err)
		}
		values = append(values, structpb.NewStructValue(s))
	}
	return &structpb.ListValue{Values: values}, nil
}

func (h *GRPCHandler) AddProduct(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.StringValue, error) {
	err := h.cartService.AddProduct(ctx, req.GetValue())
	return wrapperspb.String(service.Notification(service.OpAddProduct, err)), nil
}

func (h *GRPCHandler) RemoveProduct(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.StringValue, error) {
	err := h.cartService.RemoveProduct(ctx, req.GetValue())
	return wrapperspb.String(service.Notification(service.OpRemoveProduct, err)), nil
}

func (h *GRPCHandler) UpdateProductAmount(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	productID, ok := integerField(req, "productId")
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "productId must be an integer")
	}
	amount, ok := integerField(req, "amount")
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "amount must be an integer")
	}

	err := h.cartService.UpdateProductAmount(ctx, productID, int(amount))
	return wrapperspb.String(service.Notification(service.OpUpdateProductAmount, err)), nil
}

func lineItemFields(item domain.LineItem) map[string]any {
	return map[string]any{
		"id":     item.ID,
		"title":  item.Title,
		"price":  item.Price,
		"image":  item.Image,
		"amount": item.Amount,
	}
}

func integerField(s *structpb.Struct, name string) (int64, bool) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, false
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > 1<<53 {
		return 0, false
	}
	return int64(n.NumberValue), true
}

var _ CartServiceServer = (*GRPCHandler)(nil)
